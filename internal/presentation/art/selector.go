package art

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/penwyp/go-horti/internal/config"
	"github.com/penwyp/go-horti/internal/util"
)

// Selector picks and loads the art asset for a plant description.
type Selector struct {
	dir     string
	deadArt string
	stages  config.KeywordTable
	species config.KeywordTable

	mu    sync.Mutex
	cache map[string]string
}

// NewSelector creates a selector from the art settings in cfg.
func NewSelector(cfg *config.Config) *Selector {
	return &Selector{
		dir:     cfg.ArtDirectory,
		deadArt: cfg.DeadArt,
		stages:  cfg.Stages,
		species: cfg.Species,
		cache:   make(map[string]string),
	}
}

// Match returns the value of the longest keyword contained in description.
// Among matches of equal length the first table entry wins.
func Match(table config.KeywordTable, description string) (string, bool) {
	best := -1
	for i, entry := range table {
		if !strings.Contains(description, entry.Keyword) {
			continue
		}
		if best < 0 || len(entry.Keyword) > len(table[best].Keyword) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return table[best].Value, true
}

// FileName resolves the art file for a plant. Dead plants always use the
// dead art; otherwise the stage template is filled with the species.
func (s *Selector) FileName(description string, dead bool) string {
	if dead {
		return s.deadArt
	}
	stage, _ := Match(s.stages, description)
	species, _ := Match(s.species, description)
	return util.ExpandTemplate(stage, map[string]string{"species": species})
}

// Art returns the art text for a plant, or "" when the asset cannot be read.
func (s *Selector) Art(description string, dead bool) string {
	name := s.FileName(description, dead)
	if name == "" {
		return ""
	}
	return s.load(name)
}

func (s *Selector) load(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if art, ok := s.cache[name]; ok {
		return art
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	art := ""
	if err != nil {
		util.LogDebug(fmt.Sprintf("Art asset unavailable: %s - %v", name, err))
	} else {
		art = string(data)
	}
	s.cache[name] = art
	return art
}
