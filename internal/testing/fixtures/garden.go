package fixtures

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// Day is one day in seconds.
const Day = int64(86400)

// Plant is a plant-data document as written by the owner's client.
type Plant struct {
	LastWatered int64  `json:"last_watered"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	IsDead      bool   `json:"is_dead,omitempty"`
}

// Visit is a guest visitor-log entry.
type Visit struct {
	Timestamp int64  `json:"timestamp"`
	User      string `json:"user"`
}

// GardenGenerator writes a user directory, art assets and a config file
// into a temporary root for tests.
type GardenGenerator struct {
	Root    string
	UserDir string
	ArtDir  string
}

// NewGardenGenerator lays out home/ and art/ under root.
func NewGardenGenerator(root string) (*GardenGenerator, error) {
	g := &GardenGenerator{
		Root:    root,
		UserDir: filepath.Join(root, "home"),
		ArtDir:  filepath.Join(root, "art"),
	}
	for _, dir := range []string{g.UserDir, g.ArtDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// PlantPath returns where the plant document for user lives.
func (g *GardenGenerator) PlantPath(user string) string {
	return filepath.Join(g.UserDir, user, ".botany", user+"_plant_data.json")
}

// VisitorsPath returns where the visitor log for user lives.
func (g *GardenGenerator) VisitorsPath(user string) string {
	return filepath.Join(g.UserDir, user, ".botany", "visitors.json")
}

// AddPlant writes a plant document for user.
func (g *GardenGenerator) AddPlant(user string, plant Plant) error {
	data, err := sonic.Marshal(plant)
	if err != nil {
		return err
	}
	return g.WritePlantRaw(user, string(data))
}

// WritePlantRaw writes arbitrary content as the plant document for user.
func (g *GardenGenerator) WritePlantRaw(user, content string) error {
	return writeFile(g.PlantPath(user), content)
}

// AddVisits writes the visitor log for user.
func (g *GardenGenerator) AddVisits(user string, visits ...Visit) error {
	data, err := sonic.Marshal(visits)
	if err != nil {
		return err
	}
	return g.WriteVisitorsRaw(user, string(data))
}

// WriteVisitorsRaw writes arbitrary content as the visitor log for user.
func (g *GardenGenerator) WriteVisitorsRaw(user, content string) error {
	return writeFile(g.VisitorsPath(user), content)
}

// AddArt writes an art asset.
func (g *GardenGenerator) AddArt(name string, lines ...string) error {
	return writeFile(filepath.Join(g.ArtDir, name), strings.Join(lines, "\n"))
}

// WriteConfig writes config.json with a small layout and the standard
// keyword tables, and returns its path.
func (g *GardenGenerator) WriteConfig(plotsPerRow int, banned ...string) (string, error) {
	cfg := map[string]any{
		"plotwidth":         12,
		"plotheight":        7,
		"descriptionheight": 3,
		"plotshor":          plotsPerRow,
		"userdir":           "home",
		"artdirectory":      "art",
		"deadart":           "rip.txt",
		"banned":            append([]string{}, banned...),
	}
	data, err := sonic.Marshal(cfg)
	if err != nil {
		return "", err
	}

	// keyword tables are appended by hand to keep their order
	tables := `"stages":{"seed":"seed.txt","seedling":"{species}_seedling.txt","flowering":"{species}_flowering.txt"},` +
		`"species":{"poppy":"poppy","cactus":"cactus","venus flytrap":"flytrap"}`
	content := "{" + tables + "," + string(data[1:])

	path := filepath.Join(g.Root, "config.json")
	return path, writeFile(path, content)
}

// AddStandardArt writes the art assets referenced by WriteConfig.
func (g *GardenGenerator) AddStandardArt() error {
	assets := map[string][]string{
		"seed.txt":              {"", "", "   .", "  ___"},
		"poppy_seedling.txt":    {"", "   ,", "   |", "  ___"},
		"poppy_flowering.txt":   {"  (@)", "   |", "  \\|/", "  ___"},
		"cactus_seedling.txt":   {"", "   n", "   |", "  ___"},
		"cactus_flowering.txt":  {"  *", "  |_|", "   |", "  ___"},
		"flytrap_seedling.txt":  {"", "  <>", "   |", "  ___"},
		"flytrap_flowering.txt": {" <><>", "  \\/", "   |", "  ___"},
		"rip.txt":               {"  ___", " |RIP|", " |   |", "  ___"},
	}
	for name, lines := range assets {
		if err := g.AddArt(name, lines...); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
