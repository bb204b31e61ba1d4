// Package broadcast fans range events out to server-sent-event subscribers.
package broadcast

import (
	"encoding/json"
	"log"
	"sync"

	"aimrange/internal/analytics"
	"aimrange/internal/events"
)

type Message struct {
	Event string
	Data  string
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go func() {
		for ev := range bus.SceneChanges {
			b.Publish("sceneChange", ev)
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Broadcast(event string, data string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- Message{Event: event, Data: data}:
		default:
			// skip clients with full data channels
		}
	}
}

// Publish encodes v as JSON and broadcasts it.
func (b *Broadcaster) Publish(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Broadcast] encoding %s: %v\n", event, err)
		return
	}
	b.Broadcast(event, string(data))
}

// RoundEnded announces a recorded round, and the badges it earned, to every
// subscriber.
func (b *Broadcaster) RoundEnded(recap analytics.RoundRecap) {
	b.Publish("roundEnded", recap)
}
