package ui

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/pet"
	"vpet/internal/roster"
)

// MaxLogLines is how many activity lines the log panel keeps
const MaxLogLines = 8

// timerMsg fires a callback armed through the bridge
type timerMsg struct {
	id uint64
}

// Bridge connects the roster to Bubble Tea. It receives the roster's
// notifications and turns scheduled callbacks into tea.Tick commands, so
// every callback runs inside Update like any other message.
type Bridge struct {
	pets []pet.Pet
	logs []string

	sound bool
	bell  io.Writer
	cue   pet.Sound

	seq    uint64
	timers map[uint64]*bridgeTimer
	cmds   []tea.Cmd
}

type bridgeTimer struct {
	b  *Bridge
	id uint64
	f  func()
}

// NewBridge returns a bridge ringing bell on sound cues when sound is on
func NewBridge(sound bool, bell io.Writer) *Bridge {
	return &Bridge{
		sound:  sound,
		bell:   bell,
		timers: make(map[uint64]*bridgeTimer),
	}
}

// RenderAll implements roster.Observer
func (b *Bridge) RenderAll(pets []pet.Pet) {
	b.pets = pets
}

// LogActivity implements roster.Observer
func (b *Bridge) LogActivity(msg string) {
	b.logs = append(b.logs, msg)
	if len(b.logs) > MaxLogLines {
		b.logs = b.logs[len(b.logs)-MaxLogLines:]
	}
}

// PlaySound implements roster.Observer. The cue is picked up by the model
// after the current update; the bell is fire-and-forget.
func (b *Bridge) PlaySound(kind pet.Sound) {
	b.cue = kind
	if b.sound && b.bell != nil {
		if _, err := io.WriteString(b.bell, "\a"); err != nil {
			log.Printf("Error ringing bell: %v", err)
		}
	}
}

// SetSound switches the bell on or off
func (b *Bridge) SetSound(on bool) {
	b.sound = on
}

// Sound reports whether the bell is on
func (b *Bridge) Sound() bool {
	return b.sound
}

// Pets returns the last rendered roster
func (b *Bridge) Pets() []pet.Pet {
	return b.pets
}

// Logs returns the activity log, oldest first
func (b *Bridge) Logs() []string {
	return b.logs
}

// AfterFunc implements roster.Scheduler
func (b *Bridge) AfterFunc(d time.Duration, f func()) roster.Timer {
	b.seq++
	t := &bridgeTimer{b: b, id: b.seq, f: f}
	b.timers[t.id] = t
	id := t.id
	b.cmds = append(b.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return t
}

// Stop implements roster.Timer. The tick still arrives but finds nothing.
func (t *bridgeTimer) Stop() bool {
	if _, ok := t.b.timers[t.id]; !ok {
		return false
	}
	delete(t.b.timers, t.id)
	return true
}

// fire runs the callback for id once
func (b *Bridge) fire(id uint64) {
	t, ok := b.timers[id]
	if !ok {
		return
	}
	delete(b.timers, id)
	t.f()
}

// pendingTimers returns the number of armed callbacks
func (b *Bridge) pendingTimers() int {
	return len(b.timers)
}

// drain returns the commands queued since the last call
func (b *Bridge) drain() []tea.Cmd {
	cmds := b.cmds
	b.cmds = nil
	return cmds
}

// takeCue returns and clears the last requested sound
func (b *Bridge) takeCue() (pet.Sound, bool) {
	cue := b.cue
	b.cue = ""
	return cue, cue != ""
}
