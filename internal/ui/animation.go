package ui

import (
	"time"

	"vpet/internal/pet"
)

// Animation holds the current sound cue animation state
type Animation struct {
	Cue       pet.Sound
	Frame     int
	StartTime time.Time
}

// AnimationFrames contains the frames shown for each sound cue
var AnimationFrames = map[pet.Sound][]string{
	pet.SoundNap: {
		"  😪        ",
		"  😴 z      ",
		"  😴 z z    ",
		"  😴 z z z  ",
	},
	pet.SoundPlay: {
		"  ⚽      😺",
		"     ⚽   😸",
		"        ⚽😺",
		"     ⚽   😸  *boing*",
	},
	pet.SoundEat: {
		"  🍪→    😺",
		"     🍪→ 😺",
		"         😸 *nom*",
		"         😋 *munch*",
	},
	pet.SoundDeath: {
		"  💔",
		"  💔 ...",
		"  🪦",
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 150 * time.Millisecond

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	frames := AnimationFrames[anim.Cue]
	if len(frames) == 0 {
		return ""
	}
	if anim.Frame >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[anim.Frame]
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	frames := AnimationFrames[anim.Cue]
	return anim.Frame >= len(frames)
}

// AnimationTotalFrames returns the number of frames for a cue
func AnimationTotalFrames(cue pet.Sound) int {
	return len(AnimationFrames[cue])
}
