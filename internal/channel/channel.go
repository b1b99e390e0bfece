package channel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/segyhp/reminder-engine/internal/config"

	"go.uber.org/zap"
)

// Channel delivers a text message to an already normalized phone number (+<country><number>).
// A returned error means the message may not have been delivered; nothing is retried.
type Channel interface {
	Deliver(ctx context.Context, phone, text string) error
}

// New builds the channel selected by CHANNEL_DRIVER, wrapped with the configured pacing.
func New(cfg *config.Config, logger *zap.Logger) (Channel, error) {
	var ch Channel

	switch cfg.Channel.Driver {
	case config.ChannelDriverPrint:
		ch = NewPrintChannel(logger)
	case config.ChannelDriverWALink:
		ch = NewWALinkChannel(logger)
	case config.ChannelDriverGateway:
		ch = NewGatewayChannel(
			cfg.Channel.GatewayURL,
			cfg.Channel.GatewayToken,
			&http.Client{Timeout: cfg.GetChannelTimeout()},
		)
	default:
		return nil, fmt.Errorf("unknown channel driver %q", cfg.Channel.Driver)
	}

	return NewPaced(ch, cfg.GetChannelPacing()), nil
}
