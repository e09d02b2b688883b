package worker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/umaru-jpg/luvyn/internal/adapter/mailer"
	"github.com/umaru-jpg/luvyn/internal/adapter/natsbus"
	"github.com/umaru-jpg/luvyn/internal/adapter/webhook"
	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/metrics"
)

// Module wires notification channels and the worker pool.
var Module = fx.Provide(
	newSenders,
	newNotifier,
)

var connectNATS = func(url string, logger *slog.Logger) (natsConn, error) {
	return natsbus.Connect(url, logger)
}

type natsConn interface {
	natsbus.Conn
	Drain() error
}

type sendersParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// newSenders enables each channel whose settings are present. An unreachable
// NATS server only disables the event channel.
func newSenders(p sendersParams) ([]Sender, error) {
	var senders []Sender

	if p.Config.Mail.Enabled() {
		m, err := mailer.New(mailer.Options{
			Host:      p.Config.Mail.Host,
			Port:      p.Config.Mail.Port,
			Username:  p.Config.Mail.User,
			Password:  p.Config.Mail.Password,
			From:      p.Config.Mail.From,
			StoreName: p.Config.StoreName,
		})
		if err != nil {
			return nil, err
		}
		senders = append(senders, m)
	} else {
		p.Logger.Info("email notifications disabled, SMTP_HOST is empty")
	}

	if p.Config.NATSURL != "" {
		conn, err := connectNATS(p.Config.NATSURL, p.Logger)
		if err != nil {
			p.Logger.Warn("order events disabled", slog.String("error", err.Error()))
		} else {
			senders = append(senders, natsbus.NewPublisher(conn, p.Config.NATSSubject))
			p.Lifecycle.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return conn.Drain()
				},
			})
		}
	}

	if p.Config.WebhookURL != "" {
		client, err := webhook.NewClient(p.Config.WebhookURL, p.Logger)
		if err != nil {
			return nil, err
		}
		senders = append(senders, client)
	}

	return senders, nil
}

type notifierParams struct {
	fx.In

	Senders []Sender
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newNotifier(p notifierParams) *Notifier {
	return NewNotifier(
		p.Senders,
		p.Config.NotifyWorkers,
		p.Config.NotifyQueueSize,
		p.Config.NotifyTimeout,
		p.Logger,
		p.Metrics,
	)
}
