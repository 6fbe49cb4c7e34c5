package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/skill"
)

// blankNotation fills rows missing from a short sheet.
const blankNotation = "0 o"

// row is the decoded state of one input line.
type row struct {
	skill skill.Skill
	err   error
}

// EditorModel edits the ten notations of a routine sheet. Every row is
// decoded as it is typed, taking off from the previous row's landing.
type EditorModel struct {
	Path   string
	Name   string
	Inputs []textinput.Model
	Focus  int
	Keys   KeyMap
	Names  *skill.Table
	Status string
	Saved  bool
	Width  int

	rows []row
}

// NewEditor returns an editor for sh that saves to path.
func NewEditor(path string, sh *routine.Sheet, names *skill.Table) EditorModel {
	m := EditorModel{
		Path:   path,
		Name:   sh.Name,
		Inputs: make([]textinput.Model, routine.Length),
		Keys:   DefaultKeyMap(),
		Names:  names,
	}
	for i := range m.Inputs {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%2d ", i+1)
		ti.Placeholder = blankNotation
		ti.CharLimit = 16
		ti.Width = 12
		if i < len(sh.Skills) {
			ti.SetValue(sh.Skills[i])
		} else {
			ti.SetValue(blankNotation)
		}
		m.Inputs[i] = ti
	}
	m.Inputs[0].Focus()
	m.decode()
	return m
}

// Init starts the cursor blinking.
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			return m, m.focus(m.Focus - 1)
		case key.Matches(msg, m.Keys.Down):
			return m, m.focus(m.Focus + 1)
		case key.Matches(msg, m.Keys.Save):
			m.save()
			return m, nil
		case key.Matches(msg, m.Keys.Reset):
			m.canonicalize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Saved = false
		m.Status = ""
		m.decode()
	}
	return m, cmd
}

// focus moves the cursor to row i, wrapping at either end.
func (m *EditorModel) focus(i int) tea.Cmd {
	m.Inputs[m.Focus].Blur()
	m.Focus = (i + len(m.Inputs)) % len(m.Inputs)
	return m.Inputs[m.Focus].Focus()
}

// decode refreshes every row, chaining takeoff from the previous landing.
// A row that fails to decode leaves the chain where it was.
func (m *EditorModel) decode() {
	m.rows = make([]row, len(m.Inputs))
	from := skill.Feet
	for i, in := range m.Inputs {
		s, err := skill.Decode(in.Value(), from)
		m.rows[i] = row{skill: s, err: err}
		if err == nil {
			from = s.To
		}
	}
}

// Notations returns the current input values.
func (m EditorModel) Notations() []string {
	out := make([]string, len(m.Inputs))
	for i, in := range m.Inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// Routine builds the routine from the inputs.
func (m EditorModel) Routine() (*routine.Routine, error) {
	return routine.Build(m.Name, m.Notations())
}

// canonicalize rewrites every decodable row in canonical notation.
func (m *EditorModel) canonicalize() {
	for i, r := range m.rows {
		if r.err == nil {
			m.Inputs[i].SetValue(skill.Encode(r.skill))
		}
	}
	m.decode()
}

func (m *EditorModel) save() {
	r, err := m.Routine()
	if err != nil {
		m.Status = err.Error()
		m.Saved = false
		return
	}
	if err := r.Sheet().Save(m.Path); err != nil {
		m.Status = err.Error()
		m.Saved = false
		return
	}
	m.Status = "saved " + filepath.Base(m.Path)
	m.Saved = true
}

// View renders the editor.
func (m EditorModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("routine: "+m.Name) + "\n\n")

	for i, in := range m.Inputs {
		indicator := " "
		if i == m.Focus {
			indicator = styleIndicator.Render(selectionIndicator)
		}
		b.WriteString(indicator + in.View() + "  " + m.describe(m.rows[i]) + "\n")
	}

	b.WriteString("\n")
	if r, err := m.Routine(); err == nil {
		st := r.Stats()
		b.WriteString(styleStats.Render(fmt.Sprintf(
			"difficulty %.2f   rotation %g (%g°)   twist %g (%g°)   lands on %s",
			st.TotalDifficulty, st.LargestRotation, st.LargestRotationDegrees,
			st.LargestTwist, st.LargestTwistDegrees, r.Landing(),
		)) + "\n")
	}

	switch {
	case m.Saved:
		b.WriteString(styleSaved.Render(m.Status) + "\n")
	case m.Status != "":
		b.WriteString(styleError.Render(m.Status) + "\n")
	}
	b.WriteString(styleHelp.Render(m.Keys.helpLine()))
	return b.String()
}

func (m EditorModel) describe(r row) string {
	if r.err != nil {
		return styleError.Render(r.err.Error())
	}
	s := r.skill
	return fmt.Sprintf("%s %s %s",
		styleName.Render(skill.Name(s, m.Names)),
		styleDifficulty.Render(fmt.Sprintf("%.2f", skill.Difficulty(s))),
		styleHelp.Render(fmt.Sprintf("%s → %s", s.From, s.To)),
	)
}
