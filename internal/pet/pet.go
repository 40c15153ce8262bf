package pet

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Testable time and id functions
var (
	TimeNow = func() time.Time { return time.Now().UTC() }
	NewID   = func() string { return uuid.NewString() }
)

// Pet represents one virtual pet on the roster. The JSON layout is the
// persisted record format.
type Pet struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Species   Species `json:"type"`
	Energy    int     `json:"energy"`
	Fullness  int     `json:"fullness"`
	Happiness int     `json:"happiness"`
}

// Delta is a pre-clamp change to the three stats.
type Delta struct {
	Energy    int
	Happiness int
	Fullness  int
}

// ActionDeltas holds the stat change for every action.
var ActionDeltas = map[Action]Delta{
	ActionNap:  {Energy: NapEnergyIncrease, Happiness: -NapHappinessDecrease, Fullness: -NapFullnessDecrease},
	ActionPlay: {Energy: -PlayEnergyDecrease, Happiness: PlayHappinessIncrease, Fullness: -PlayFullnessDecrease},
	ActionFeed: {Energy: -FeedEnergyDecrease, Happiness: FeedHappinessIncrease, Fullness: FeedFullnessIncrease},
}

// DecayDelta is applied to every pet on each decay tick.
var DecayDelta = Delta{Energy: -DecayAmount, Happiness: -DecayAmount, Fullness: -DecayAmount}

// New creates a pet with default stats and a fresh id
func New(name string, species Species) Pet {
	p := Pet{
		ID:        NewID(),
		Name:      strings.TrimSpace(name),
		Species:   ParseSpecies(string(species)),
		Energy:    InitialStat,
		Fullness:  InitialStat,
		Happiness: InitialStat,
	}
	log.Printf("Created new pet: %s (%s, %s)", p.Name, p.Species, p.ID)
	return p
}

// Apply shifts all three stats by d and clamps them to [MinStat, MaxStat].
func (p *Pet) Apply(d Delta) {
	p.Energy += d.Energy
	p.Happiness += d.Happiness
	p.Fullness += d.Fullness
	p.Clamp()
}

// Clamp forces every stat back into [MinStat, MaxStat].
func (p *Pet) Clamp() {
	p.Energy = clamp(p.Energy)
	p.Happiness = clamp(p.Happiness)
	p.Fullness = clamp(p.Fullness)
}

// IsDead reports whether any stat has reached zero. This is the only death
// predicate; IsAlive is its negation.
func (p Pet) IsDead() bool {
	return p.Energy <= MinStat || p.Fullness <= MinStat || p.Happiness <= MinStat
}

// IsAlive reports whether all three stats are above zero.
func (p Pet) IsAlive() bool {
	return !p.IsDead()
}

func (p Pet) String() string {
	return fmt.Sprintf("%s [E:%d H:%d F:%d]", p.Name, p.Energy, p.Happiness, p.Fullness)
}

func clamp(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

// ParseSpecies maps a stored type tag to a known species, falling back to
// DefaultSpecies.
func ParseSpecies(s string) Species {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sp := range AllSpecies {
		if string(sp) == s {
			return sp
		}
	}
	return DefaultSpecies
}

// Emoji returns the picture shown for a living pet of this species
func (s Species) Emoji() string {
	switch s {
	case SpeciesDog:
		return "🐶"
	case SpeciesBunny:
		return "🐰"
	case SpeciesDino:
		return "🦖"
	default:
		return "🐱"
	}
}

// DisplayName returns a capitalized species name
func (s Species) DisplayName() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseAction returns the action for a key, or false if unknown.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionNap, ActionPlay, ActionFeed:
		return Action(s), true
	}
	return "", false
}

// Label returns the control label for an action
func (a Action) Label() string {
	switch a {
	case ActionNap:
		return "Nap😴"
	case ActionPlay:
		return "Play⚽"
	case ActionFeed:
		return "Feed🍪"
	default:
		return string(a)
	}
}

// Sound returns the cue played when the action succeeds
func (a Action) Sound() Sound {
	switch a {
	case ActionNap:
		return SoundNap
	case ActionPlay:
		return SoundPlay
	default:
		return SoundEat
	}
}

// Message returns the activity log line for a successful action
func (a Action) Message(name string) string {
	switch a {
	case ActionNap:
		return fmt.Sprintf("💤 You took a nap with %s.", name)
	case ActionPlay:
		return fmt.Sprintf("🎮 You played with %s.", name)
	default:
		return fmt.Sprintf("🍽️ You fed %s.", name)
	}
}

// Stat returns the value of the stat an action restores
func (p Pet) Stat(a Action) int {
	switch a {
	case ActionNap:
		return p.Energy
	case ActionPlay:
		return p.Happiness
	default:
		return p.Fullness
	}
}
