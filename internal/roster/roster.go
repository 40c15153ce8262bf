// Package roster owns the ordered set of pets: creation, actions, decay,
// deferred removal of dead pets and persistence.
package roster

import (
	"fmt"
	"log"
	"strings"
	"time"

	"vpet/internal/cooldown"
	"vpet/internal/pet"
)

// Options configures a Roster. Zero values fall back to in-memory storage,
// no observer, a manual scheduler and the default timings.
type Options struct {
	Store      BlobStore
	Observer   Observer
	Scheduler  Scheduler
	Gate       *cooldown.Gate
	DeathDelay time.Duration
}

// Roster is the pet store. It is not safe for concurrent use: every method
// must run on the goroutine that also runs the scheduler's callbacks.
type Roster struct {
	pets       []pet.Pet
	store      BlobStore
	observer   Observer
	scheduler  Scheduler
	gate       *cooldown.Gate
	deathDelay time.Duration

	// removals holds the pending removal timer for each dead pet
	removals map[string]Timer
}

// New returns an empty roster. Call Load to restore saved pets.
func New(opts Options) *Roster {
	r := &Roster{
		store:      opts.Store,
		observer:   opts.Observer,
		scheduler:  opts.Scheduler,
		gate:       opts.Gate,
		deathDelay: opts.DeathDelay,
		removals:   make(map[string]Timer),
	}
	if r.store == nil {
		r.store = NewMemoryStore()
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	if r.scheduler == nil {
		r.scheduler = NewManualScheduler(pet.TimeNow())
	}
	if r.gate == nil {
		r.gate = cooldown.NewGate(pet.DefaultCooldown, nil)
	}
	if r.deathDelay <= 0 {
		r.deathDelay = pet.DefaultDeathDelay
	}
	return r
}

// Load replaces the roster with the saved one and renders it. It returns the
// number of pets restored.
func (r *Roster) Load() int {
	r.pets = LoadPets(r.store)
	log.Printf("Loaded %d pets", len(r.pets))
	r.observer.RenderAll(r.Pets())
	return len(r.pets)
}

// Pets returns a copy of the roster, oldest first.
func (r *Roster) Pets() []pet.Pet {
	return append([]pet.Pet(nil), r.pets...)
}

// Len returns the number of pets on the roster, dead ones included
func (r *Roster) Len() int {
	return len(r.pets)
}

// Full reports whether Create would fail with ErrFull
func (r *Roster) Full() bool {
	return len(r.pets) >= pet.MaxPets
}

// Get returns the pet with id
func (r *Roster) Get(id string) (pet.Pet, bool) {
	if i := r.index(id); i >= 0 {
		return r.pets[i], true
	}
	return pet.Pet{}, false
}

// Gate returns the cooldown gate shared by all actions
func (r *Roster) Gate() *cooldown.Gate {
	return r.gate
}

// PendingRemoval reports whether a removal timer is armed for id
func (r *Roster) PendingRemoval(id string) bool {
	_, ok := r.removals[id]
	return ok
}

// Create adds a pet with default stats. The roster is left untouched on
// error.
func (r *Roster) Create(name string, species pet.Species) (pet.Pet, error) {
	if r.Full() {
		return pet.Pet{}, ErrFull
	}
	if strings.TrimSpace(name) == "" {
		return pet.Pet{}, ErrEmptyName
	}

	p := pet.New(name, species)
	r.pets = append(r.pets, p)
	r.observer.LogActivity(fmt.Sprintf("🥚 %s the %s joined the family!", p.Name, p.Species.DisplayName()))
	r.commit()
	return p, nil
}

// ApplyAction performs action on the pet with petID. A pet that dies from the
// action is announced at once and removed after the death delay.
func (r *Roster) ApplyAction(petID string, action pet.Action) error {
	delta, ok := pet.ActionDeltas[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	i := r.index(petID)
	if i < 0 {
		return ErrNotFound
	}
	p := &r.pets[i]
	if p.IsDead() || r.PendingRemoval(petID) {
		return ErrDead
	}

	if remaining, ok := r.gate.Reserve(petID, action); !ok {
		secs := cooldown.SecondsLeft(remaining)
		r.observer.LogActivity(fmt.Sprintf("⏳ %s needs to rest before doing that again! (%ds left)", p.Name, secs))
		return &CooldownError{PetID: petID, Action: action, SecondsLeft: secs}
	}

	p.Apply(delta)
	log.Printf("%s on %s. Now %s", action, p.Name, p)
	r.observer.LogActivity(action.Message(p.Name))
	r.observer.PlaySound(action.Sound())

	if p.IsDead() {
		r.scheduleRemoval(*p)
	}
	r.commit()
	return nil
}

// DecayTick lowers every stat of every pet, then persists and renders once.
// Each pet that died gets its own removal timer.
func (r *Roster) DecayTick() {
	var dying []pet.Pet
	for i := range r.pets {
		p := &r.pets[i]
		p.Apply(pet.DecayDelta)
		if p.IsDead() && !r.PendingRemoval(p.ID) {
			dying = append(dying, *p)
		}
	}
	log.Printf("Decay tick: %d pets, %d newly dead", len(r.pets), len(dying))

	for _, p := range dying {
		r.scheduleRemoval(p)
	}
	r.commit()
}

// Remove takes the pet off the roster. Removing an absent id is a no-op that
// returns false.
func (r *Roster) Remove(petID string) bool {
	if t, ok := r.removals[petID]; ok {
		t.Stop()
		delete(r.removals, petID)
	}

	i := r.index(petID)
	if i < 0 {
		return false
	}
	name := r.pets[i].Name
	r.pets = append(r.pets[:i], r.pets[i+1:]...)
	r.gate.Forget(petID)

	log.Printf("Removed pet %s (%s)", name, petID)
	r.observer.LogActivity(fmt.Sprintf("🪦 %s has been laid to rest.", name))
	r.commit()
	return true
}

// scheduleRemoval announces the death and arms the removal timer.
func (r *Roster) scheduleRemoval(p pet.Pet) {
	log.Printf("Pet %s died: %s", p.ID, p)
	r.observer.LogActivity(fmt.Sprintf("⚠️ Oh no! %s ran away due to neglect. 💔", p.Name))
	r.observer.PlaySound(pet.SoundDeath)

	id := p.ID
	r.removals[id] = r.scheduler.AfterFunc(r.deathDelay, func() {
		r.Remove(id)
	})
}

// commit persists the roster and asks the observer to redraw it. A failed
// write is logged and otherwise ignored.
func (r *Roster) commit() {
	if err := SavePets(r.store, r.pets); err != nil {
		log.Printf("Error saving roster: %v", err)
	}
	r.observer.RenderAll(r.Pets())
}

func (r *Roster) index(id string) int {
	for i, p := range r.pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}
