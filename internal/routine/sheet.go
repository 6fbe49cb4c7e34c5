package routine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/somersault/internal/skill"
)

// Sheet is the on-disk description of a routine: a name and one notation
// per skill.
type Sheet struct {
	Name   string   `toml:"name" yaml:"name"`
	Skills []string `toml:"skills" yaml:"skills"`
}

// IsSheetFile reports whether path has an extension DecodeFile understands.
func IsSheetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// DecodeFile reads path into v, choosing TOML or YAML by extension.
func DecodeFile(path string, v any) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSheetFile(path) {
		return fmt.Errorf("%s: %w %q", path, ErrUnknownFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if ext == ".toml" {
		err = toml.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// EncodeFile writes v to path as TOML or YAML, choosing by extension.
func EncodeFile(path string, v any) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSheetFile(path) {
		return fmt.Errorf("%s: %w %q", path, ErrUnknownFormat, ext)
	}
	var (
		data []byte
		err  error
	)
	if ext == ".toml" {
		data, err = toml.Marshal(v)
	} else {
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadSheet reads a routine sheet. A sheet without a name is named after
// its file.
func LoadSheet(path string) (*Sheet, error) {
	var sh Sheet
	if err := DecodeFile(path, &sh); err != nil {
		return nil, err
	}
	if sh.Name == "" {
		base := filepath.Base(path)
		sh.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &sh, nil
}

// Routine decodes the sheet's notations.
func (sh *Sheet) Routine() (*Routine, error) {
	r, err := Build(sh.Name, sh.Skills)
	if err != nil {
		return nil, fmt.Errorf("routine %q: %w", sh.Name, err)
	}
	return r, nil
}

// Save writes the sheet to path.
func (sh *Sheet) Save(path string) error {
	return EncodeFile(path, sh)
}

// Sheet returns the on-disk form of r with canonical notations.
func (r *Routine) Sheet() *Sheet {
	sh := &Sheet{Name: r.Name, Skills: make([]string, 0, Length)}
	for _, s := range r.Skills {
		sh.Skills = append(sh.Skills, skill.Encode(s))
	}
	return sh
}

// Load reads a sheet file and builds its routine.
func Load(path string) (*Routine, error) {
	sh, err := LoadSheet(path)
	if err != nil {
		return nil, err
	}
	return sh.Routine()
}
