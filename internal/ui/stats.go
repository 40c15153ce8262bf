package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/pet"
)

// StatsModel is a simple Bubble Tea model for displaying the saved roster
type StatsModel struct {
	Pets []pet.Pet
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var s strings.Builder
	s.WriteString("╔════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  🐾 Pet Store  %d/%d pets            ║\n", len(m.Pets), pet.MaxPets))
	s.WriteString("╠════════════════════════════════════╣\n")

	if len(m.Pets) == 0 {
		s.WriteString("║  No pets yet.                      ║\n")
	}
	for i, p := range m.Pets {
		if i > 0 {
			s.WriteString("║                                    ║\n")
		}
		s.WriteString(fmt.Sprintf("║  %s %-20s       ║\n", p.Species.Emoji(), p.Name))
		s.WriteString(fmt.Sprintf("║  Status:    %-24s║\n", pet.GetStatusWithLabel(p)))
		s.WriteString(fmt.Sprintf("║  Energy:    [%s] %3d%%      ║\n", makeBar(p.Energy), p.Energy))
		s.WriteString(fmt.Sprintf("║  Fullness:  [%s] %3d%%      ║\n", makeBar(p.Fullness), p.Fullness))
		s.WriteString(fmt.Sprintf("║  Happiness: [%s] %3d%%      ║\n", makeBar(p.Happiness), p.Happiness))
	}

	s.WriteString("╚════════════════════════════════════╝\n")
	s.WriteString("\nPress ESC, click, or any key to close...")

	return s.String()
}

// DisplayStats shows the stats display until a key is pressed
func DisplayStats(pets []pet.Pet, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}, opts...)
	if _, err := tea.NewProgram(StatsModel{Pets: pets}, opts...).Run(); err != nil {
		return fmt.Errorf("stats display: %w", err)
	}
	return nil
}
