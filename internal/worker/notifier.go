package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// Sender delivers a confirmation over one channel.
type Sender interface {
	Channel() string
	Send(ctx context.Context, job model.OrderConfirmation) error
}

// ResultRecorder counts delivery outcomes per channel.
type ResultRecorder interface {
	NotificationResult(channel string, err error)
}

// Notifier fans order confirmations out to every sender from a bounded queue.
// Delivery failures are logged and counted, never returned to the caller.
type Notifier struct {
	senders  []Sender
	timeout  time.Duration
	workers  int
	logger   *slog.Logger
	recorder ResultRecorder

	jobs    chan model.OrderConfirmation
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
	closed  bool
}

// NewNotifier constructs the notification worker pool.
func NewNotifier(senders []Sender, workers, queueSize int, timeout time.Duration, logger *slog.Logger, recorder ResultRecorder) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Notifier{
		senders:  senders,
		timeout:  timeout,
		workers:  workers,
		logger:   logger,
		recorder: recorder,
		jobs:     make(chan model.OrderConfirmation, queueSize),
	}
}

// Channels lists the configured sender names.
func (n *Notifier) Channels() []string {
	names := make([]string, 0, len(n.senders))
	for _, s := range n.senders {
		names = append(names, s.Channel())
	}
	return names
}

// Start launches the workers. They outlive ctx cancellation and run until Stop.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.running || n.closed {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	n.cancel = cancel
	n.running = true

	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker(runCtx)
	}
}

// Enqueue queues a job without blocking. It reports false when the queue is
// full or the notifier has been stopped.
func (n *Notifier) Enqueue(job model.OrderConfirmation) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return false
	}
	select {
	case n.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop closes the queue and waits for queued jobs to drain. When ctx expires
// first, in-flight sends are cancelled and ctx.Err() is returned.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.jobs)
	cancel := n.cancel
	running := n.running
	n.mu.Unlock()

	if !running {
		dropped := 0
		for range n.jobs {
			dropped++
		}
		if dropped > 0 {
			n.logger.Warn("notifier stopped before start, dropping queued confirmations",
				slog.Int("dropped", dropped),
			)
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()
	for job := range n.jobs {
		n.deliver(ctx, job)
	}
}

func (n *Notifier) deliver(ctx context.Context, job model.OrderConfirmation) {
	for _, s := range n.senders {
		sendCtx, cancel := ctx, context.CancelFunc(func() {})
		if n.timeout > 0 {
			sendCtx, cancel = context.WithTimeout(ctx, n.timeout)
		}
		err := s.Send(sendCtx, job)
		cancel()

		if n.recorder != nil {
			n.recorder.NotificationResult(s.Channel(), err)
		}
		if err != nil {
			n.logger.Error("order notification failed",
				slog.String("order", job.Order.ID),
				slog.String("channel", s.Channel()),
				slog.String("error", err.Error()),
			)
			continue
		}
		n.logger.Info("order notification sent",
			slog.String("order", job.Order.ID),
			slog.String("channel", s.Channel()),
			slog.String("to", job.Customer.Email),
		)
	}
}
