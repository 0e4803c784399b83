package track

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed tracks/*.txt
var builtinFS embed.FS

// Loader loads maps from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Unreadable or unparseable files are skipped. Tracks are sorted by ID.
func (l *Loader) LoadAll() ([]Track, error) {
	var tracks []Track

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		t, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("track: walking directory %s: %w", l.Root, err)
	}

	sortTracks(tracks)
	return tracks, nil
}

// LoadFile loads a single map file. The ID defaults to the file name
// without extension, and a relative IMAGE path is resolved against the
// file's directory.
func (l *Loader) LoadFile(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, fmt.Errorf("track: reading file %s: %w", path, err)
	}

	t, err := parseByExtension(data, filepath.Ext(path))
	if err != nil {
		return Track{}, fmt.Errorf("track: parsing file %s: %w", path, err)
	}

	fill(&t, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	t.Source = path
	if t.Image != "" && !filepath.IsAbs(t.Image) {
		t.Image = filepath.Join(filepath.Dir(path), t.Image)
	}
	return t, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Track, error) {
	tracks, err := l.LoadAll()
	if err != nil {
		return Track{}, err
	}
	for _, t := range tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return Track{}, fmt.Errorf("track: not found: %s", id)
}

// Builtin returns the maps compiled into the binary, sorted by ID.
func Builtin() ([]Track, error) {
	entries, err := fs.ReadDir(builtinFS, "tracks")
	if err != nil {
		return nil, fmt.Errorf("track: reading built-in maps: %w", err)
	}

	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("tracks/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("track: reading built-in %s: %w", e.Name(), err)
		}
		t, err := ParseText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("track: parsing built-in %s: %w", e.Name(), err)
		}
		fill(&t, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		tracks = append(tracks, t)
	}

	sortTracks(tracks)
	return tracks, nil
}

// fill sets the ID and display name when the map does not carry them.
func fill(t *Track, id string) {
	if t.ID == "" {
		t.ID = id
	}
	if t.Name == "" {
		t.Name = nameFromID(t.ID)
	}
}

func sortTracks(tracks []Track) {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].ID < tracks[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".yaml", ".yml":
		return true
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (Track, error) {
	switch strings.ToLower(ext) {
	case ".txt":
		return ParseText(bytes.NewReader(data))
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Track{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
