package gamedata

//go:generate go tool mockgen -source=audio.go -destination=mocks/mock_audio.go -package=mocks

// Audio receives the cues a round produces. Implementations must not block:
// they are called from inside the tick.
type Audio interface {
	PlayGunshot()
	PlayMetalPing(distance float64, center bool)
}

// Silent discards every cue.
type Silent struct{}

func (Silent) PlayGunshot()                {}
func (Silent) PlayMetalPing(float64, bool) {}
