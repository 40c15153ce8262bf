package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vpet/internal/pet"
)

const barWidth = 10

var gameStyles = struct {
	title    lipgloss.Style
	status   lipgloss.Style
	console  lipgloss.Style
	selected lipgloss.Style
	grave    lipgloss.Style
	menuBox  lipgloss.Style
	anim     lipgloss.Style
	log      lipgloss.Style
	alert    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	console: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1).
		Width(26),

	selected: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#FF75B5")).
		Padding(0, 1).
		Width(26),

	grave: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	anim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(0, 2),

	log: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color("#874BFD")).
		Foreground(lipgloss.Color("#CCCCCC")),

	alert: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#FF0000")).
		Padding(1, 3).
		Bold(true),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}

	switch m.Mode {
	case ModeAlert:
		return lipgloss.JoinVertical(lipgloss.Left,
			gameStyles.alert.Render("⚠️  "+m.Alert),
			"",
			gameStyles.status.Render("Press any key to continue"),
		)
	case ModeCreate:
		return m.renderCreate()
	}

	sections := []string{
		gameStyles.title.Render(fmt.Sprintf("🐾 Pet Store (%d/%d) 🐾", len(m.Bridge.Pets()), pet.MaxPets)),
		"",
		m.renderConsoles(),
	}

	if m.Animation.Cue != "" {
		sections = append(sections, "", gameStyles.anim.Render(GetAnimationFrame(m.Animation)))
	}

	sections = append(sections,
		"",
		m.renderLog(),
		"",
		gameStyles.status.Render("←/→ pet • ↑/↓ action • enter do it • n/p/f nap/play/feed • a adopt • q quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderConsoles() string {
	pets := m.Bridge.Pets()
	if len(pets) == 0 {
		return gameStyles.menuBox.Render("No pets yet. Press 'a' to adopt one!")
	}

	consoles := make([]string, 0, len(pets))
	for i, p := range pets {
		style := gameStyles.console
		if i == m.Selected {
			style = gameStyles.selected
		}
		consoles = append(consoles, style.Render(m.renderConsole(p, i == m.Selected)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, consoles...)
}

func (m Model) renderConsole(p pet.Pet, selected bool) string {
	header := fmt.Sprintf("%s %s", p.Species.Emoji(), p.Name)

	if p.IsDead() || m.Roster.PendingRemoval(p.ID) {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			gameStyles.grave.Render("   "+pet.StatusEmojiDead),
			gameStyles.grave.Render(" R.I.P. "+p.Name),
			"",
			gameStyles.grave.Render(pet.GetStatusWithLabel(p)),
		)
	}

	gate := m.Roster.Gate()
	var lines []string
	for i, action := range pet.AllActions {
		cursor := " "
		if selected && i == m.Choice {
			cursor = ">"
		}
		wait := " "
		if !gate.Ready(p.ID, action) {
			wait = "⏳"
		}
		lines = append(lines, fmt.Sprintf("%s %-9s %s %3d %s",
			cursor, statName(action), makeBar(p.Stat(action)), p.Stat(action), wait))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		gameStyles.status.Render(pet.GetStatusWithLabel(p)),
		"",
		strings.Join(lines, "\n"),
	)
}

func statName(a pet.Action) string {
	switch a {
	case pet.ActionNap:
		return "Energy"
	case pet.ActionPlay:
		return "Happiness"
	case pet.ActionFeed:
		return "Fullness"
	}
	return string(a)
}

func makeBar(value int) string {
	filled := value * barWidth / pet.MaxStat
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func (m Model) renderLog() string {
	logs := m.Bridge.Logs()
	if len(logs) == 0 {
		return gameStyles.log.Render("Nothing has happened yet.")
	}
	return gameStyles.log.Render(strings.Join(logs, "\n"))
}

func (m Model) renderCreate() string {
	var species []string
	for i, s := range pet.AllSpecies {
		item := fmt.Sprintf(" %s %s ", s.Emoji(), s.DisplayName())
		if i == m.SpeciesChoice {
			item = gameStyles.title.Render("[" + strings.TrimSpace(item) + "]")
		}
		species = append(species, item)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		gameStyles.title.Render("🥚 Adopt a new pet"),
		"",
		fmt.Sprintf("Name: %s▏", m.NameInput),
		"",
		"Type: "+strings.Join(species, " "),
		"",
		gameStyles.status.Render("type a name • ←/→ type • enter adopt • esc cancel"),
	)
}
