// Package sse streams catalog change notifications to runway and admin
// pages as text/event-stream.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RunwayUpdated tells clients to refetch the runway. It is throttled.
const RunwayUpdated = "runway.updated"

const (
	// DefaultThrottle is the minimum gap between runway.updated events.
	DefaultThrottle = 2 * time.Second
	// KeepAlive is how often an idle stream receives a comment line.
	KeepAlive = 25 * time.Second

	retryMillis = 3000
	listenerBuf = 64
)

// Event is one named notification. Data is sent as JSON.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type envelope struct {
	event Event
	// touches marks catalog edits that also change what the runway shows.
	touches bool
}

// Broker fans events out to connected streams. The loop in run is the only
// goroutine that touches the listener set, the event sequence and the
// runway throttle clock.
type Broker struct {
	throttle time.Duration

	join  chan chan []byte
	leave chan chan []byte
	in    chan envelope
	count chan chan int

	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// NewBroker starts a broker that emits runway.updated at most once per
// throttle interval. A non-positive throttle uses DefaultThrottle.
func NewBroker(throttle time.Duration) *Broker {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	b := &Broker{
		throttle: throttle,
		join:     make(chan chan []byte),
		leave:    make(chan chan []byte),
		in:       make(chan envelope, 256),
		count:    make(chan chan int),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go b.run()
	return b
}

// frame encodes e with sequence id seq.
func frame(seq uint64, e Event) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", seq, e.Type, payload)), nil
}

func (b *Broker) run() {
	defer close(b.finished)

	listeners := make(map[chan []byte]struct{})
	var (
		seq        uint64
		lastRunway time.Time
	)

	send := func(e Event) {
		seq++
		raw, err := frame(seq, e)
		if err != nil {
			return
		}
		for ch := range listeners {
			select {
			case ch <- raw:
			default:
			}
		}
	}

	for {
		select {
		case <-b.done:
			for ch := range listeners {
				close(ch)
			}
			return

		case ch := <-b.join:
			listeners[ch] = struct{}{}

		case ch := <-b.leave:
			if _, ok := listeners[ch]; ok {
				delete(listeners, ch)
				close(ch)
			}

		case env := <-b.in:
			send(env.event)
			if !env.touches {
				continue
			}
			if now := time.Now(); now.Sub(lastRunway) >= b.throttle {
				lastRunway = now
				send(Event{Type: RunwayUpdated, Data: struct{}{}})
			}

		case reply := <-b.count:
			reply <- len(listeners)
		}
	}
}

// Close stops the broker and ends every stream. It is safe to call twice.
func (b *Broker) Close() {
	b.once.Do(func() { close(b.done) })
	<-b.finished
}

// Listen registers a stream and returns the channel its frames arrive on.
// The channel is closed by Leave or Close.
func (b *Broker) Listen() chan []byte {
	ch := make(chan []byte, listenerBuf)
	select {
	case b.join <- ch:
	case <-b.finished:
		close(ch)
	}
	return ch
}

// Leave unregisters a stream returned by Listen.
func (b *Broker) Leave(ch chan []byte) {
	select {
	case b.leave <- ch:
	case <-b.finished:
	}
}

// Listeners reports how many streams are connected.
func (b *Broker) Listeners() int {
	reply := make(chan int, 1)
	select {
	case b.count <- reply:
	case <-b.finished:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-b.finished:
		return 0
	}
}

// Publish sends e to every stream as is.
func (b *Broker) Publish(e Event) {
	b.enqueue(envelope{event: e})
}

// PublishProductEvent sends a catalog change of the given kind, with the
// product id when there is one, followed by a throttled runway.updated.
func (b *Broker) PublishProductEvent(kind, id string) {
	data := map[string]string{}
	if id != "" {
		data["id"] = id
	}
	b.enqueue(envelope{event: Event{Type: kind, Data: data}, touches: true})
}

func (b *Broker) enqueue(env envelope) {
	select {
	case <-b.finished:
		return
	default:
	}
	select {
	case b.in <- env:
	case <-b.finished:
	}
}

// ServeHTTP streams events to one client (GET /api/events) until the
// request ends or the broker closes.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("retry: " + strconv.Itoa(retryMillis) + "\n\n"))
	flusher.Flush()

	ch := b.Listen()
	defer b.Leave(ch)

	ping := time.NewTicker(KeepAlive)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
