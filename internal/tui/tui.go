// Package tui is an interactive terminal editor for routine sheets.
package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/skill"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// OpenSheet reads the sheet at path, or starts a blank one named after the
// file when it does not exist yet.
func OpenSheet(path string) (*routine.Sheet, error) {
	sh, err := routine.LoadSheet(path)
	if errors.Is(err, fs.ErrNotExist) {
		base := filepath.Base(path)
		return routine.Blank(strings.TrimSuffix(base, filepath.Ext(base))).Sheet(), nil
	}
	return sh, err
}

// NewProgram creates an editor program for the sheet at path.
// The program uses the alternate screen buffer.
func NewProgram(path string, names *skill.Table, opts ...tea.ProgramOption) (*Program, error) {
	if !routine.IsSheetFile(path) {
		return nil, fmt.Errorf("%s: %w", path, routine.ErrUnknownFormat)
	}
	sh, err := OpenSheet(path)
	if err != nil {
		return nil, err
	}
	allOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(NewEditor(path, sh, names), allOpts...), nil
}

// Run opens the editor and blocks until it exits.
func Run(path string, names *skill.Table) error {
	p, err := NewProgram(path, names)
	if err != nil {
		return err
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
