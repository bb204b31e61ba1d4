package events

import "aimrange/internal/stats"

type SceneChangeEvent struct {
	SessionID string
	Scene     string
	Mode      string
}

// RoundEndedEvent carries a finished round to the ledger writer.
type RoundEndedEvent struct {
	Summary stats.Summary
}

type Bus struct {
	SceneChanges chan SceneChangeEvent
	RoundsEnded  chan RoundEndedEvent
}

func NewBus() *Bus {
	return &Bus{
		SceneChanges: make(chan SceneChangeEvent, 10),
		RoundsEnded:  make(chan RoundEndedEvent, 64),
	}
}

// PublishScene hands ev to the bus without blocking. It reports false when
// the buffer is full and the event was dropped.
func (b *Bus) PublishScene(ev SceneChangeEvent) bool {
	select {
	case b.SceneChanges <- ev:
		return true
	default:
		return false
	}
}

func (b *Bus) PublishRound(ev RoundEndedEvent) bool {
	select {
	case b.RoundsEnded <- ev:
		return true
	default:
		return false
	}
}
