package channel

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/segyhp/reminder-engine/pkg/phone"

	"go.uber.org/zap"
)

// PrintChannel only logs the message. Used for dry runs and development.
type PrintChannel struct {
	logger *zap.Logger
}

func NewPrintChannel(logger *zap.Logger) *PrintChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintChannel{logger: logger}
}

func (c *PrintChannel) Deliver(ctx context.Context, number, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info("reminder message", zap.String("phone", phone.Format(number)), zap.String("message", text))
	return nil
}

// WALinkChannel builds wa.me click-to-chat links instead of sending; an operator opens them.
type WALinkChannel struct {
	logger *zap.Logger

	mu    sync.Mutex
	links []string
}

func NewWALinkChannel(logger *zap.Logger) *WALinkChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WALinkChannel{logger: logger}
}

// Link returns https://wa.me/<digits>?text=<message>.
func Link(number, text string) string {
	return "https://wa.me/" + strings.TrimPrefix(number, "+") + "?text=" + url.QueryEscape(text)
}

func (c *WALinkChannel) Deliver(ctx context.Context, number, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	link := Link(number, text)

	c.mu.Lock()
	c.links = append(c.links, link)
	c.mu.Unlock()

	c.logger.Info("reminder link", zap.String("phone", number), zap.String("link", link))
	return nil
}

// Links returns the links built so far.
func (c *WALinkChannel) Links() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.links...)
}
