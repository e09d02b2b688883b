package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	testhelpers "github.com/umaru-jpg/luvyn/internal/test"
)

type recorderStub struct {
	mu      sync.Mutex
	results map[string][]error
}

func (r *recorderStub) NotificationResult(channel string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = make(map[string][]error)
	}
	r.results[channel] = append(r.results[channel], err)
}

func (r *recorderStub) count(channel string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results[channel])
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func job(id string) model.OrderConfirmation {
	return model.OrderConfirmation{
		Order:    model.Order{ID: id, UserID: "u-1"},
		Customer: model.UserContact{ID: "u-1", Email: "alice@example.com"},
	}
}

func TestNewNotifierDefaults(t *testing.T) {
	n := NewNotifier(nil, 0, 0, time.Second, discardLogger(), nil)
	if n.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", n.workers)
	}
	if cap(n.jobs) != 1 {
		t.Fatalf("expected queue default to 1, got %d", cap(n.jobs))
	}
}

func TestNotifierDeliversToEveryChannel(t *testing.T) {
	email := &testhelpers.SenderStub{Name: "email"}
	events := &testhelpers.SenderStub{Name: "nats"}
	rec := &recorderStub{}
	n := NewNotifier([]Sender{email, events}, 2, 4, time.Second, discardLogger(), rec)

	if got := n.Channels(); len(got) != 2 || got[0] != "email" || got[1] != "nats" {
		t.Fatalf("unexpected channels %v", got)
	}

	n.Start(context.Background())
	if !n.Enqueue(job("o-1")) || !n.Enqueue(job("o-2")) {
		t.Fatal("expected jobs to be accepted")
	}
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}

	if len(email.Deliveries()) != 2 || len(events.Deliveries()) != 2 {
		t.Fatalf("expected both jobs on both channels, got %d/%d", len(email.Deliveries()), len(events.Deliveries()))
	}
	if rec.count("email") != 2 || rec.count("nats") != 2 {
		t.Fatalf("expected results recorded per channel, got %v", rec.results)
	}
}

func TestNotifierFailureDoesNotStopOtherChannels(t *testing.T) {
	failing := &testhelpers.SenderStub{Name: "email", SendFn: func(context.Context, model.OrderConfirmation) error {
		return errors.New("smtp down")
	}}
	healthy := &testhelpers.SenderStub{Name: "webhook"}
	rec := &recorderStub{}
	n := NewNotifier([]Sender{failing, healthy}, 1, 1, time.Second, discardLogger(), rec)

	n.Start(context.Background())
	n.Enqueue(job("o-1"))
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}

	if len(healthy.Deliveries()) != 1 {
		t.Fatal("expected healthy channel to receive the job")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.results["email"][0] == nil || rec.results["webhook"][0] != nil {
		t.Fatalf("unexpected results %v", rec.results)
	}
}

func TestNotifierBoundsEachSend(t *testing.T) {
	var hasDeadline bool
	sender := &testhelpers.SenderStub{SendFn: func(ctx context.Context, _ model.OrderConfirmation) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}}
	n := NewNotifier([]Sender{sender}, 1, 1, 50*time.Millisecond, discardLogger(), nil)

	n.Start(context.Background())
	n.Enqueue(job("o-1"))
	_ = n.Stop(context.Background())

	if !hasDeadline {
		t.Fatal("expected send context to carry a deadline")
	}
}

func TestNotifierEnqueueIsNonBlocking(t *testing.T) {
	release := make(chan struct{})
	sender := &testhelpers.SenderStub{SendFn: func(ctx context.Context, _ model.OrderConfirmation) error {
		<-release
		return nil
	}}
	n := NewNotifier([]Sender{sender}, 1, 1, time.Second, discardLogger(), nil)
	n.Start(context.Background())

	// one job in flight, one queued, the rest rejected
	accepted := 0
	deadline := time.After(time.Second)
	for accepted < 2 {
		if n.Enqueue(job("o")) {
			accepted++
		}
		select {
		case <-deadline:
			t.Fatal("queue never accepted two jobs")
		default:
		}
	}
	if n.Enqueue(job("overflow")) && n.Enqueue(job("overflow")) {
		t.Fatal("expected full queue to reject jobs")
	}

	close(release)
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestNotifierRejectsAfterStop(t *testing.T) {
	n := NewNotifier(nil, 1, 1, time.Second, discardLogger(), nil)
	n.Start(context.Background())
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if n.Enqueue(job("late")) {
		t.Fatal("expected stopped notifier to reject jobs")
	}
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("second stop should be a no-op, got %v", err)
	}
}

func TestNotifierStopWithoutStart(t *testing.T) {
	n := NewNotifier(nil, 1, 1, time.Second, discardLogger(), nil)
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotifierStopWithoutStartLogsDroppedJobs(t *testing.T) {
	var logs bytes.Buffer
	sender := &testhelpers.SenderStub{}
	n := NewNotifier([]Sender{sender}, 1, 4, time.Second, slog.New(slog.NewJSONHandler(&logs, nil)), nil)
	n.Enqueue(job("o-1"))
	n.Enqueue(job("o-2"))

	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.Deliveries()) != 0 {
		t.Fatal("expected nothing delivered without workers")
	}
	if !strings.Contains(logs.String(), `"dropped":2`) {
		t.Fatalf("expected dropped count in log, got %q", logs.String())
	}
}

func TestNotifierStopHonoursDeadline(t *testing.T) {
	sender := &testhelpers.SenderStub{SendFn: func(ctx context.Context, _ model.OrderConfirmation) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	n := NewNotifier([]Sender{sender}, 1, 1, time.Minute, discardLogger(), nil)
	n.Start(context.Background())
	n.Enqueue(job("slow"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := n.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNotifierSurvivesStartContextCancellation(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	n := NewNotifier([]Sender{sender}, 1, 1, time.Second, discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	n.Start(ctx)
	cancel()

	n.Enqueue(job("o-1"))
	if err := n.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if len(sender.Deliveries()) != 1 {
		t.Fatal("expected delivery after start context was cancelled")
	}
	if sender.Deliveries()[0].Order.ID != "o-1" {
		t.Fatalf("unexpected job %+v", sender.Deliveries()[0])
	}
}
