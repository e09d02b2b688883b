package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/metrics"
	testhelpers "github.com/umaru-jpg/luvyn/internal/test"
)

type natsConnStub struct {
	drained bool
}

func (c *natsConnStub) Publish(string, []byte) error           { return nil }
func (c *natsConnStub) FlushWithContext(context.Context) error { return nil }
func (c *natsConnStub) Drain() error                           { c.drained = true; return nil }

func stubNATS(t *testing.T, conn natsConn, err error) {
	t.Helper()
	orig := connectNATS
	connectNATS = func(string, *slog.Logger) (natsConn, error) { return conn, err }
	t.Cleanup(func() { connectNATS = orig })
}

func senderNames(senders []Sender) []string {
	names := make([]string, 0, len(senders))
	for _, s := range senders {
		names = append(names, s.Channel())
	}
	return names
}

func TestNewSendersNoneConfigured(t *testing.T) {
	senders, err := newSenders(sendersParams{
		Lifecycle: &testhelpers.LifecycleRecorder{},
		Config:    &config.Config{},
		Logger:    discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(senders) != 0 {
		t.Fatalf("expected no senders, got %v", senderNames(senders))
	}
}

func TestNewSendersAllChannels(t *testing.T) {
	conn := &natsConnStub{}
	stubNATS(t, conn, nil)
	lc := &testhelpers.LifecycleRecorder{}

	senders, err := newSenders(sendersParams{
		Lifecycle: lc,
		Config: &config.Config{
			StoreName:   "Luvyn",
			NATSURL:     "nats://localhost:4222",
			NATSSubject: "luvyn.orders.confirmed",
			WebhookURL:  "http://hooks.local/orders",
			Mail:        config.MailConfig{Host: "smtp.example.com", Port: 587, From: "shop@example.com"},
		},
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := senderNames(senders)
	if len(names) != 3 || names[0] != "email" || names[1] != "nats" || names[2] != "webhook" {
		t.Fatalf("unexpected senders %v", names)
	}
	if len(lc.Hooks) != 1 {
		t.Fatalf("expected nats drain hook, got %d hooks", len(lc.Hooks))
	}
	if err := lc.Hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("drain hook failed: %v", err)
	}
	if !conn.drained {
		t.Fatal("expected connection to be drained")
	}
}

func TestNewSendersSkipsUnreachableNATS(t *testing.T) {
	stubNATS(t, nil, errors.New("no servers available"))

	senders, err := newSenders(sendersParams{
		Lifecycle: &testhelpers.LifecycleRecorder{},
		Config:    &config.Config{NATSURL: "nats://down:4222"},
		Logger:    discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(senders) != 0 {
		t.Fatalf("expected nats channel to be skipped, got %v", senderNames(senders))
	}
}

func TestNewSendersRejectsBadSettings(t *testing.T) {
	cases := []*config.Config{
		{WebhookURL: "relative/path"},
		{Mail: config.MailConfig{Host: "smtp.example.com", Port: 25, From: "not an address"}},
	}
	for _, cfg := range cases {
		if _, err := newSenders(sendersParams{Lifecycle: &testhelpers.LifecycleRecorder{}, Config: cfg, Logger: discardLogger()}); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestModuleProvidesNotifier(t *testing.T) {
	cfg := &config.Config{NotifyWorkers: 3, NotifyQueueSize: 7, NotifyTimeout: time.Second}

	var notifier *Notifier
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, discardLogger(), metrics.New()),
		Module,
		fx.Populate(&notifier),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if notifier.workers != 3 || cap(notifier.jobs) != 7 {
		t.Fatalf("unexpected notifier sizing %d/%d", notifier.workers, cap(notifier.jobs))
	}
}
