package notification

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var errQueueFull = errors.New("notification queue full")

type MemoryConfig struct {
	Workers   int
	QueueSize int
	Retry     RetryPolicy
}

// MemoryDispatcher queues messages in process and delivers them from a
// fixed pool of workers. Each channel of a message is attempted
// independently; a failing channel never delays or cancels another.
type MemoryDispatcher struct {
	channels []Channel
	sink     Sink
	policy   RetryPolicy
	logger   *zap.Logger

	queue   chan Message
	stop    chan struct{}
	wg      sync.WaitGroup
	archive sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewMemoryDispatcher(
	cfg MemoryConfig,
	channels []Channel,
	sink Sink,
	logger *zap.Logger,
) *MemoryDispatcher {

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}

	d := &MemoryDispatcher{
		channels: channels,
		sink:     sink,
		policy:   cfg.Retry,
		logger:   logger,
		queue:    make(chan Message, cfg.QueueSize),
		stop:     make(chan struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Dispatch never blocks. When the queue is full or the dispatcher is
// closed the message is dead-lettered in the background.
func (d *MemoryDispatcher) Dispatch(m Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.reject(m, errors.New("dispatcher closed"), false)
		return
	}

	select {
	case d.queue <- m:
	default:
		d.reject(m, errQueueFull, true)
	}
}

// reject logs on the caller's goroutine and leaves the sink writes to a
// goroutine. Tracked rejects are awaited by Close.
func (d *MemoryDispatcher) reject(m Message, err error, tracked bool) {
	d.logger.Warn("notification dropped",
		zap.Uint("booking_id", m.BookingID),
		zap.Error(err),
	)

	if tracked {
		d.archive.Add(1)
	}
	go func() {
		if tracked {
			defer d.archive.Done()
		}
		for _, ch := range d.channels {
			putDeadLetter(d.sink, newDeadLetter(ch.Name(), m, 0, err), d.logger)
		}
	}()
}

func (d *MemoryDispatcher) worker() {
	defer d.wg.Done()
	for m := range d.queue {
		d.fanOut(m)
	}
}

func (d *MemoryDispatcher) fanOut(m Message) {
	var wg sync.WaitGroup
	for _, ch := range d.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()

			attempts, err := deliver(ch, m, d.policy, d.stop, d.logger)
			if err != nil {
				putDeadLetter(d.sink, newDeadLetter(ch.Name(), m, attempts, err), d.logger)
				return
			}
			d.logger.Info("notification delivered",
				zap.String("channel", ch.Name()),
				zap.Uint("booking_id", m.BookingID),
				zap.Int("attempts", attempts),
			)
		}(ch)
	}
	wg.Wait()
}

// Close stops accepting messages and waits for queued ones to be processed.
// If ctx ends first, pending backoffs are cut short and remaining retries
// are dead-lettered.
func (d *MemoryDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		d.archive.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		close(d.stop)
		<-done
		return ctx.Err()
	}
}
