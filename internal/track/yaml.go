package track

import (
	"fmt"

	"github.com/vovakirdan/racetrack/internal/core"
	"gopkg.in/yaml.v3"
)

// YAMLTrack is the YAML form of a map.
type YAMLTrack struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Size   YAMLSize  `yaml:"size,omitempty"`
	Start  *YAMLZone `yaml:"start,omitempty"`
	Finish *YAMLZone `yaml:"finish,omitempty"`
	Walls  [][]int   `yaml:"walls"` // Each wall is [x1, y1, x2, y2]
	Image  string    `yaml:"image,omitempty"`
}

// YAMLSize is the grid size.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLZone is a rectangular zone in grid cells.
type YAMLZone struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (z *YAMLZone) rect() *core.Rect {
	if z == nil {
		return nil
	}
	r := core.NewRect(z.X, z.Y, z.W, z.H)
	return &r
}

// ParseYAML parses a YAML map. Walls without exactly four coordinates are
// skipped and counted.
func ParseYAML(data []byte) (Track, error) {
	var yt YAMLTrack
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Track{}, fmt.Errorf("track: yaml unmarshal: %w", err)
	}

	t := Track{
		ID:     yt.ID,
		Name:   yt.Name,
		Width:  yt.Size.W,
		Height: yt.Size.H,
		Start:  yt.Start.rect(),
		Finish: yt.Finish.rect(),
		Image:  yt.Image,
	}

	for _, w := range yt.Walls {
		if len(w) != 4 {
			t.Skipped++
			continue
		}
		t.Walls = append(t.Walls, core.Seg(w[0], w[1], w[2], w[3]))
	}

	return t, nil
}
