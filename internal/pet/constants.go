package pet

import "time"

// Game constants
const (
	MaxPets      = 4
	MaxStat      = 100
	MinStat      = 0
	InitialStat  = 50
	DecayAmount  = 15 // Lost on every stat per decay tick
	LowStatLevel = 30 // Below this a stat is shown as a need

	DefaultDecayInterval = 10 * time.Second
	DefaultCooldown      = 10 * time.Second
	DefaultDeathDelay    = 3 * time.Second // Grace period between death and removal

	// Nap (energy-restore)
	NapEnergyIncrease    = 40
	NapHappinessDecrease = 10
	NapFullnessDecrease  = 10

	// Play (happiness-boost)
	PlayEnergyDecrease    = 10
	PlayHappinessIncrease = 30
	PlayFullnessDecrease  = 10

	// Feed (fullness-boost)
	FeedEnergyDecrease    = 15
	FeedHappinessIncrease = 5
	FeedFullnessIncrease  = 30

	// Status emojis
	StatusEmojiHappy  = "😸"
	StatusEmojiTired  = "😾"
	StatusEmojiHungry = "🙀"
	StatusEmojiSad    = "😿"
	StatusEmojiDead   = "🪦"
)

// Species is the display variant chosen when a pet is created.
type Species string

const (
	SpeciesCat   Species = "cat"
	SpeciesDog   Species = "dog"
	SpeciesBunny Species = "bunny"
	SpeciesDino  Species = "dino"
)

// DefaultSpecies is used when a pet is created or loaded with an unknown type.
const DefaultSpecies = SpeciesCat

// AllSpecies lists the selectable species in menu order.
var AllSpecies = []Species{SpeciesCat, SpeciesDog, SpeciesBunny, SpeciesDino}

// Action is a user-triggered stat change. The values match the stat each
// action restores.
type Action string

const (
	ActionNap  Action = "energy"
	ActionPlay Action = "happiness"
	ActionFeed Action = "fullness"
)

// AllActions lists the actions in control order.
var AllActions = []Action{ActionNap, ActionPlay, ActionFeed}

// Sound is an audio cue requested from the UI alongside a state change.
type Sound string

const (
	SoundNap   Sound = "nap"
	SoundPlay  Sound = "play"
	SoundEat   Sound = "eat"
	SoundDeath Sound = "death"
)
