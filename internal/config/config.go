package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-horti/internal/util"
)

var (
	ErrInvalidLayout  = errors.New("invalid plot layout")
	ErrMissingUserDir = errors.New("userdir is required")
)

const (
	DefaultPlantData = ".botany/{user}_plant_data.json"
	DefaultVisitors  = ".botany/visitors.json"
)

// Config holds garden layout, source locations and art tables.
type Config struct {
	PlotWidth         int `yaml:"plotwidth"`
	PlotHeight        int `yaml:"plotheight"`
	DescriptionHeight int `yaml:"descriptionheight"`
	// PlotsPerRow is the number of plots per grid row; 0 fits the terminal.
	PlotsPerRow int `yaml:"plotshor"`

	UserDir      string `yaml:"userdir"`
	PlantData    string `yaml:"plantdata"`
	Visitors     string `yaml:"visitors"`
	ArtDirectory string `yaml:"artdirectory"`
	DeadArt      string `yaml:"deadart"`

	Stages  KeywordTable `yaml:"stages"`
	Species KeywordTable `yaml:"species"`
	Banned  []string     `yaml:"banned"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-"`
}

// KeywordEntry maps a description keyword to an art template.
type KeywordEntry struct {
	Keyword string
	Value   string
}

// KeywordTable is an ordered keyword mapping. Order follows the config file
// and is used to break ties between equally long keyword matches.
type KeywordTable []KeywordEntry

// UnmarshalYAML decodes a mapping node while keeping key order.
func (t *KeywordTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: keyword table must be a mapping", node.Line)
	}

	table := make(KeywordTable, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("keyword %q: %w", key, err)
		}
		if idx, dup := seen[key]; dup {
			table[idx].Value = value
			continue
		}
		seen[key] = len(table)
		table = append(table, KeywordEntry{Keyword: key, Value: value})
	}

	*t = table
	return nil
}

// Load reads and validates the config file at path. Both JSON and YAML are
// accepted. Relative paths inside the file are resolved against its directory.
func Load(path string) (*Config, error) {
	path = util.ExpandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	util.LogDebugf("Config loaded from %s: %dx%d plots, %d per row, %d stages, %d species, %d banned",
		path, cfg.PlotWidth, cfg.PlotHeight, cfg.PlotsPerRow, len(cfg.Stages), len(cfg.Species), len(cfg.Banned))
	return cfg, nil
}

// Parse decodes config data and applies defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.PlantData == "" {
		c.PlantData = DefaultPlantData
	}
	if c.Visitors == "" {
		c.Visitors = DefaultVisitors
	}
}

func (c *Config) resolvePaths(base string) {
	c.UserDir = util.ResolvePath(base, c.UserDir)
	c.ArtDirectory = util.ResolvePath(base, c.ArtDirectory)
}

// Validate checks the layout and required locations.
func (c *Config) Validate() error {
	if c.PlotWidth < 1 {
		return fmt.Errorf("%w: plotwidth must be at least 1, got %d", ErrInvalidLayout, c.PlotWidth)
	}
	if c.DescriptionHeight < 1 {
		return fmt.Errorf("%w: descriptionheight must be at least 1, got %d", ErrInvalidLayout, c.DescriptionHeight)
	}
	if c.PlotHeight < c.DescriptionHeight {
		return fmt.Errorf("%w: plotheight (%d) must not be smaller than descriptionheight (%d)",
			ErrInvalidLayout, c.PlotHeight, c.DescriptionHeight)
	}
	if c.PlotsPerRow < 0 {
		return fmt.Errorf("%w: plotshor must not be negative, got %d", ErrInvalidLayout, c.PlotsPerRow)
	}
	if c.UserDir == "" {
		return ErrMissingUserDir
	}
	return nil
}

// ArtLines is the number of art lines in a plot.
func (c *Config) ArtLines() int {
	return c.PlotHeight - c.DescriptionHeight
}

// IsBanned reports whether identity is excluded from the garden.
func (c *Config) IsBanned(identity string) bool {
	for _, b := range c.Banned {
		if b == identity {
			return true
		}
	}
	return false
}

// IsGardenFile reports whether path is a source of the garden: a user
// directory, any user's plant data or visitor log, or a file below the art
// directory.
func (c *Config) IsGardenFile(path string) bool {
	if c.ArtDirectory != "" {
		if rel, err := filepath.Rel(c.ArtDirectory, path); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
			return true
		}
	}

	rel, err := filepath.Rel(c.UserDir, path)
	if err != nil || strings.HasPrefix(rel, "..") || rel == "." {
		return false
	}
	if !strings.ContainsRune(rel, filepath.Separator) {
		return true
	}

	anyUser := map[string]string{"user": "*"}
	for _, template := range []string{c.PlantData, c.Visitors} {
		pattern := filepath.Join("*", util.ExpandTemplate(template, anyUser))
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
