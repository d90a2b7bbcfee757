// Package config loads the optional cardscroll.yaml tuning profile.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cardscroller/pkg/cards"
)

// FileName is the profile file looked up in the project root.
const FileName = "cardscroll.yaml"

// DefaultCardCount is the size of the generated deck when a profile lists no
// cards.
const DefaultCardCount = 12

// File represents cardscroll.yaml. Pointer fields distinguish "unset" from
// an explicit zero.
type File struct {
	Profile           ProfileConfig `yaml:"profile"`
	Layout            string        `yaml:"layout,omitempty"`
	Rolloff           RolloffConfig `yaml:"rolloff"`
	Padding           PaddingConfig `yaml:"padding"`
	VisibilityPad     *int          `yaml:"visibility_pad,omitempty"`
	Continuous        bool          `yaml:"continuous,omitempty"`
	SelectAnyPosition bool          `yaml:"select_any_position,omitempty"`
	FadeWithScroll    bool          `yaml:"fade_with_scroll,omitempty"`
	VelocityThreshold *float64      `yaml:"velocity_threshold,omitempty"`
	DropIn            *bool         `yaml:"drop_in,omitempty"`
	Cards             []CardConfig  `yaml:"cards,omitempty"`
}

// ProfileConfig names the profile.
type ProfileConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RolloffConfig tunes the rolloff curve.
type RolloffConfig struct {
	Power    *float64 `yaml:"power,omitempty"`
	Constant *float64 `yaml:"constant,omitempty"`
}

// PaddingConfig sets the gaps around the stack.
type PaddingConfig struct {
	Top  float64 `yaml:"top,omitempty"`
	Side float64 `yaml:"side,omitempty"`
}

// CardConfig is one card entry.
type CardConfig struct {
	ID       string `yaml:"id,omitempty"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Profile    string
	Engine     cards.Config
	Cards      []cards.Card
}

// LoadOptional reads cardscroll.yaml from dir if present.
func LoadOptional(dir string) (*File, error) {
	f, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	return f, err
}

// LoadFile reads and parses a profile at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// Parse decodes profile YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &f, nil
}

// Resolve loads cardscroll.yaml from dir (if present) and resolves defaults.
// The module path is optional; it only names the profile.
func Resolve(dir string) (*Resolved, error) {
	f, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return f.Resolve(dir)
}

// Resolve applies f over the engine defaults. dir is used to name the
// profile when f does not.
func (f *File) Resolve(dir string) (*Resolved, error) {
	modPath, _ := modulePath(dir)

	name := strings.TrimSpace(f.Profile.Name)
	if name == "" {
		name = defaultProfileName(modPath, dir)
	}

	engine, err := f.engineConfig()
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modPath,
		Profile:    name,
		Engine:     engine,
		Cards:      f.cards(),
	}, nil
}

func (f *File) engineConfig() (cards.Config, error) {
	cfg := cards.DefaultConfig()

	mode, err := cards.ParseLayoutMode(f.Layout)
	if err != nil {
		return cfg, err
	}
	cfg.Layout = mode

	if f.Rolloff.Power != nil {
		cfg.RolloffPower = *f.Rolloff.Power
	}
	if f.Rolloff.Constant != nil {
		cfg.RolloffConstant = *f.Rolloff.Constant
	}
	cfg.TopPadding = f.Padding.Top
	cfg.SidePadding = f.Padding.Side
	if f.VisibilityPad != nil {
		cfg.VisibilityPad = *f.VisibilityPad
	}
	if f.VelocityThreshold != nil {
		cfg.VelocityThreshold = *f.VelocityThreshold
	}
	if f.DropIn != nil {
		cfg.AnimateDropIn = *f.DropIn
	}
	cfg.Continuous = f.Continuous
	cfg.SelectAnyPosition = f.SelectAnyPosition
	cfg.FadeWithScroll = f.FadeWithScroll
	return cfg, nil
}

func (f *File) cards() []cards.Card {
	if len(f.Cards) == 0 {
		return SampleCards(DefaultCardCount)
	}
	out := make([]cards.Card, len(f.Cards))
	for i, c := range f.Cards {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = fmt.Sprintf("card-%d", i+1)
		}
		out[i] = cards.Card{ID: id, Title: c.Title, Subtitle: c.Subtitle}
	}
	return out
}

// SampleCards returns n placeholder cards.
func SampleCards(n int) []cards.Card {
	out := make([]cards.Card, n)
	for i := range out {
		out[i] = cards.Card{
			ID:       fmt.Sprintf("card-%d", i+1),
			Title:    fmt.Sprintf("Card %d", i+1),
			Subtitle: fmt.Sprintf("%d of %d", i+1, n),
		}
	}
	return out
}

// FindProjectRoot walks up from the current directory to find go.mod or
// cardscroll.yaml. It falls back to the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProfileName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "cardscroll"
	}
	return base
}
