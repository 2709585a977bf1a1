package game

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var levelFS embed.FS

// ErrUnknownLevel is returned when no embedded level has the requested name.
var ErrUnknownLevel = errors.New("unknown level")

// Point is a world-space position as written in level files.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec converts the point to a vector.
func (p Point) Vec() mgl32.Vec3 { return mgl32.Vec3{p.X, p.Y, p.Z} }

// LevelConfig is the on-disk description of one level revision.
type LevelConfig struct {
	Name        string       `yaml:"name"`
	Title       string       `yaml:"title"`
	Revision    int          `yaml:"revision"`
	TileSize    float32      `yaml:"tile_size"`
	FinishZ     float32      `yaml:"finish_z"`
	PlayerSpawn Point        `yaml:"player_spawn"`
	HunterSpawn Point        `yaml:"hunter_spawn"`
	Hunter      HunterTuning `yaml:"hunter"`
	Layout      string       `yaml:"layout"`
}

// Level is a loaded, validated level ready to start sessions on.
type Level struct {
	Config LevelConfig
	Grid   *TileGrid
}

// ParseLevel decodes and validates a YAML level document.
func ParseLevel(data []byte) (*Level, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedLevel)
	}
	grid, err := NewTileGrid(layoutRows(cfg.Layout), cfg.TileSize)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", cfg.Name, err)
	}
	cfg.TileSize = grid.TileSize
	if cfg.Title == "" {
		cfg.Title = cfg.Name
	}
	return &Level{Config: cfg, Grid: grid}, nil
}

// layoutRows splits a block-scalar layout into rows, dropping empty lines.
// Spaces are floor, so rows keep their trailing spaces.
func layoutRows(layout string) []string {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// LoadLevel loads one of the embedded levels by name.
func LoadLevel(name string) (*Level, error) {
	data, err := levelFS.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return ParseLevel(data)
}

// LevelNames lists the embedded levels in sorted order.
func LevelNames() []string {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
