package channel

import (
	"context"
	"sync"
)

// Recorder keeps every delivery in memory and can be told to fail for specific phones.
type Recorder struct {
	mu        sync.Mutex
	messages  []RecordedMessage
	failures  map[string]error
	onDeliver func()
}

type RecordedMessage struct {
	Phone string
	Text  string
}

func NewRecorder() *Recorder {
	return &Recorder{failures: make(map[string]error)}
}

// FailFor makes deliveries to phone return err.
func (r *Recorder) FailFor(phone string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[phone] = err
}

// OnDeliver runs fn on every delivery attempt, before the message is recorded.
func (r *Recorder) OnDeliver(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDeliver = fn
}

func (r *Recorder) Deliver(ctx context.Context, phone, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	hook := r.onDeliver
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failures[phone]; ok {
		return err
	}
	r.messages = append(r.messages, RecordedMessage{Phone: phone, Text: text})
	return nil
}

func (r *Recorder) Messages() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedMessage(nil), r.messages...)
}
