package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/config"
	"vpet/internal/cooldown"
	"vpet/internal/pet"
	"vpet/internal/roster"
)

// MaxNameLength caps the create form's name field
const MaxNameLength = 20

// Mode is what the keyboard currently drives
type Mode int

const (
	ModeRoster Mode = iota
	ModeCreate
	ModeAlert
)

const (
	alertFull      = "You can only have up to a maximum of 4 pets."
	alertEmptyName = "Please enter a name for your pet."
)

// Model represents the game state
type Model struct {
	Roster *roster.Roster
	Bridge *Bridge

	Selected int // pet index
	Choice   int // action index
	Mode     Mode
	Quitting bool

	// Create form
	NameInput     string
	SpeciesChoice int

	Alert       string
	alertReturn Mode

	Animation     Animation
	DecayInterval time.Duration
}

type decayMsg time.Time
type animTickMsg struct {
	started time.Time
}

// ConfigMsg carries a hot-reloaded configuration into the program
type ConfigMsg struct {
	Config *config.Config
}

// NewModel builds the roster from cfg and store, restores saved pets and
// wires extra observers next to the UI.
func NewModel(cfg *config.Config, store roster.BlobStore, bell io.Writer, extra ...roster.Observer) Model {
	bridge := NewBridge(cfg.Sound, bell)
	observers := append([]roster.Observer{bridge}, extra...)

	r := roster.New(roster.Options{
		Store:      store,
		Observer:   roster.Observers(observers...),
		Scheduler:  bridge,
		Gate:       cooldown.NewGate(cfg.Cooldown, nil),
		DeathDelay: cfg.DeathDelay,
	})
	r.Load()

	return Model{
		Roster:        r,
		Bridge:        bridge,
		DecayInterval: cfg.DecayInterval,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return decayTick(m.DecayInterval)
}

func decayTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return decayMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeAlert:
			m.Mode = m.alertReturn
			m.Alert = ""
			return m, nil
		case ModeCreate:
			return m.updateCreate(msg)
		default:
			return m.updateRoster(msg)
		}

	case decayMsg:
		m.Roster.DecayTick()
		return m, m.afterRoster(decayTick(m.DecayInterval))

	case timerMsg:
		m.Bridge.fire(msg.id)
		return m, m.afterRoster()

	case ConfigMsg:
		m.Bridge.SetSound(msg.Config.Sound)
		log.Printf("Sound is now %t", msg.Config.Sound)
		return m, nil

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Cue == "" || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}
		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) updateRoster(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pets := m.Bridge.Pets()

	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "right", "l":
		if m.Selected < len(pets)-1 {
			m.Selected++
		}
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
	case "down", "j":
		if m.Choice < len(pet.AllActions)-1 {
			m.Choice++
		}
	case "enter", " ":
		return m.perform(pet.AllActions[m.Choice])
	case "n":
		return m.perform(pet.ActionNap)
	case "p":
		return m.perform(pet.ActionPlay)
	case "f":
		return m.perform(pet.ActionFeed)
	case "a", "+":
		if m.Roster.Full() {
			m.showAlert(alertFull, ModeRoster)
			return m, nil
		}
		m.Mode = ModeCreate
		m.NameInput = ""
		m.SpeciesChoice = 0
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeRoster
		return m, nil
	case tea.KeyEnter:
		return m.submitCreate()
	case tea.KeyLeft:
		m.SpeciesChoice = (m.SpeciesChoice + len(pet.AllSpecies) - 1) % len(pet.AllSpecies)
	case tea.KeyRight, tea.KeyTab:
		m.SpeciesChoice = (m.SpeciesChoice + 1) % len(pet.AllSpecies)
	case tea.KeyBackspace:
		if r := []rune(m.NameInput); len(r) > 0 {
			m.NameInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.appendName([]rune{' '})
	case tea.KeyRunes:
		m.appendName(msg.Runes)
	}
	return m, nil
}

func (m *Model) appendName(r []rune) {
	name := append([]rune(m.NameInput), r...)
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	m.NameInput = string(name)
}

func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	species := pet.AllSpecies[m.SpeciesChoice]
	_, err := m.Roster.Create(m.NameInput, species)
	switch {
	case errors.Is(err, roster.ErrFull):
		m.showAlert(alertFull, ModeRoster)
	case errors.Is(err, roster.ErrEmptyName):
		m.showAlert(alertEmptyName, ModeCreate)
	case err != nil:
		m.showAlert(fmt.Sprintf("Could not create pet: %v", err), ModeRoster)
	default:
		m.Mode = ModeRoster
		m.Selected = m.Roster.Len() - 1
	}
	return m, m.afterRoster()
}

// perform applies an action to the selected pet. Cooldown denials are
// already in the activity log; missing and dead pets are ignored.
func (m Model) perform(action pet.Action) (tea.Model, tea.Cmd) {
	pets := m.Bridge.Pets()
	if len(pets) == 0 {
		return m, nil
	}
	m.clampSelection()
	target := pets[m.Selected]

	err := m.Roster.ApplyAction(target.ID, action)
	switch {
	case err == nil,
		errors.Is(err, roster.ErrCooldownActive),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, roster.ErrDead):
	default:
		log.Printf("Action %s on %s failed: %v", action, target.ID, err)
	}
	return m, m.afterRoster()
}

// afterRoster collects the timers the roster armed and starts a cue
// animation if a sound was requested.
func (m *Model) afterRoster(extra ...tea.Cmd) tea.Cmd {
	m.clampSelection()
	cmds := append(m.Bridge.drain(), extra...)
	if cue, ok := m.Bridge.takeCue(); ok {
		m.Animation = Animation{Cue: cue, StartTime: pet.TimeNow()}
		cmds = append(cmds, animTick(m.Animation.StartTime))
	}
	return tea.Batch(cmds...)
}

func (m *Model) clampSelection() {
	n := len(m.Bridge.Pets())
	if m.Selected >= n {
		m.Selected = n - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

func (m *Model) showAlert(text string, back Mode) {
	m.Alert = text
	m.alertReturn = back
	m.Mode = ModeAlert
}
