package scoring

// Tone names a display colour for each grade, worst first.
var tones = [...]string{"red", "orange", "yellow", "lime", "green", "emerald"}

// Tone returns the display tone for a grade. Out-of-range grades use the
// top tone.
func Tone(grade int) string {
	if grade < 0 || grade >= len(tones) {
		return tones[len(tones)-1]
	}
	return tones[grade]
}
