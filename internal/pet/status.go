package pet

// GetStatus returns the picture and mood emoji for the pet
func GetStatus(p Pet) string {
	if p.IsDead() {
		return StatusEmojiDead
	}

	// Most critical need wins
	lowestStat := p.Energy
	feeling := StatusEmojiTired

	if p.Fullness < lowestStat {
		lowestStat = p.Fullness
		feeling = StatusEmojiHungry
	}
	if p.Happiness < lowestStat {
		lowestStat = p.Happiness
		feeling = StatusEmojiSad
	}

	if lowestStat < LowStatLevel {
		return p.Species.Emoji() + feeling
	}
	return p.Species.Emoji() + StatusEmojiHappy
}

// GetStatusWithLabel returns status with a text label for the UI
func GetStatusWithLabel(p Pet) string {
	if p.IsDead() {
		return StatusEmojiDead + " Ran away"
	}

	status := GetStatus(p)
	switch status[len(p.Species.Emoji()):] {
	case StatusEmojiTired:
		return status + " Tired"
	case StatusEmojiHungry:
		return status + " Hungry"
	case StatusEmojiSad:
		return status + " Sad"
	default:
		return status + " Happy"
	}
}
