package roster

import (
	"time"

	"vpet/internal/pet"
)

// Observer is the UI side of the roster. Every method is called on the
// roster's goroutine and must not call back into the roster.
type Observer interface {
	RenderAll(pets []pet.Pet)
	LogActivity(msg string)
	PlaySound(kind pet.Sound)
}

// Scheduler arms one-shot timers. Callbacks must run on the same goroutine
// that drives the roster.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a pending callback.
type Timer interface {
	Stop() bool
}

type multiObserver []Observer

// Observers fans every notification out to each observer in order.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

func (m multiObserver) RenderAll(pets []pet.Pet) {
	for _, o := range m {
		o.RenderAll(pets)
	}
}

func (m multiObserver) LogActivity(msg string) {
	for _, o := range m {
		o.LogActivity(msg)
	}
}

func (m multiObserver) PlaySound(kind pet.Sound) {
	for _, o := range m {
		o.PlaySound(kind)
	}
}

// nopObserver is used when no observer is configured.
type nopObserver struct{}

func (nopObserver) RenderAll([]pet.Pet) {}
func (nopObserver) LogActivity(string)  {}
func (nopObserver) PlaySound(pet.Sound) {}
