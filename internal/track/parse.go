package track

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/racetrack/internal/core"
)

// Map file directives.
const (
	directiveWall   = "WALL"
	directiveStart  = "START"
	directiveFinish = "FINISH"
	directiveImage  = "IMAGE"
)

// ParseText reads the line-oriented map format:
//
//	# comment
//	IMAGE background.png
//	START  gx gy w h
//	FINISH gx gy w h
//	WALL   x1 y1 x2 y2
//
// Tokens are whitespace separated. Lines with missing or non-integer
// arguments are skipped and counted in Track.Skipped; unknown directives
// are ignored. A repeated START or FINISH replaces the earlier one.
func ParseText(r io.Reader) (Track, error) {
	var t Track

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		cmd, args := fields[0], fields[1:]
		if cmd == directiveImage {
			if len(args) == 0 {
				t.Skipped++
				continue
			}
			t.Image = args[0]
			continue
		}

		nums, ok := parseInts(args)
		if !ok {
			t.Skipped++
			continue
		}

		switch cmd {
		case directiveWall:
			if len(nums) < 4 {
				t.Skipped++
				continue
			}
			t.Walls = append(t.Walls, core.Seg(nums[0], nums[1], nums[2], nums[3]))
		case directiveStart, directiveFinish:
			if len(nums) < 4 {
				t.Skipped++
				continue
			}
			zone := core.NewRect(nums[0], nums[1], nums[2], nums[3])
			if cmd == directiveStart {
				t.Start = &zone
			} else {
				t.Finish = &zone
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Track{}, fmt.Errorf("track: reading map: %w", err)
	}

	return t, nil
}

func parseInts(args []string) ([]int, bool) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}
