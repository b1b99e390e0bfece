package channel

import (
	"context"
	"sync"
	"time"
)

// Paced serializes deliveries and keeps at least interval between the end of one and the start of the next.
type Paced struct {
	next     Channel
	interval time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewPaced(next Channel, interval time.Duration) *Paced {
	return &Paced{next: next, interval: interval, now: time.Now}
}

func (p *Paced) Deliver(ctx context.Context, phone, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() && p.interval > 0 {
		if wait := p.interval - p.now().Sub(p.last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	err := p.next.Deliver(ctx, phone, text)
	p.last = p.now()
	return err
}
