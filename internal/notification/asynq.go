package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeDeliver = "notification:deliver"
	QueueName   = "notifications"
)

type deliverPayload struct {
	Channel string  `json:"channel"`
	Message Message `json:"message"`
}

func NewDeliverTask(channel string, m Message) (*asynq.Task, error) {
	b, err := json.Marshal(deliverPayload{Channel: channel, Message: m})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDeliver, b), nil
}

// --------------------------------------------------
// Producer
// --------------------------------------------------

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqDispatcher enqueues one task per channel in Redis. Retries and
// archiving are left to asynq; the Worker consumes the tasks.
type AsynqDispatcher struct {
	client   enqueuer
	channels []string
	policy   RetryPolicy
	sink     Sink
	logger   *zap.Logger
	wg       sync.WaitGroup
}

func NewAsynqDispatcher(
	opt asynq.RedisClientOpt,
	channels []string,
	policy RetryPolicy,
	sink Sink,
	logger *zap.Logger,
) *AsynqDispatcher {
	return newAsynqDispatcher(asynq.NewClient(opt), channels, policy, sink, logger)
}

func newAsynqDispatcher(
	client enqueuer,
	channels []string,
	policy RetryPolicy,
	sink Sink,
	logger *zap.Logger,
) *AsynqDispatcher {
	return &AsynqDispatcher{
		client:   client,
		channels: channels,
		policy:   policy,
		sink:     sink,
		logger:   logger,
	}
}

func (d *AsynqDispatcher) Dispatch(m Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for _, ch := range d.channels {
			d.enqueue(ch, m)
		}
	}()
}

func (d *AsynqDispatcher) enqueue(channel string, m Message) {
	task, err := NewDeliverTask(channel, m)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err = d.client.EnqueueContext(ctx, task,
			asynq.Queue(QueueName),
			asynq.MaxRetry(d.policy.attempts()-1),
			asynq.Timeout(d.policy.Timeout),
		)
	}
	if err != nil {
		d.logger.Warn("notification enqueue failed",
			zap.String("channel", channel),
			zap.Uint("booking_id", m.BookingID),
			zap.Error(err),
		)
		putDeadLetter(d.sink, newDeadLetter(channel, m, 0, err), d.logger)
	}
}

func (d *AsynqDispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	return d.client.Close()
}

// --------------------------------------------------
// Consumer
// --------------------------------------------------

type WorkerConfig struct {
	Concurrency int
	Retry       RetryPolicy
}

type Worker struct {
	srv      *asynq.Server
	channels map[string]Channel
	sink     Sink
	logger   *zap.Logger
}

func NewWorker(
	opt asynq.RedisClientOpt,
	cfg WorkerConfig,
	channels []Channel,
	sink Sink,
	logger *zap.Logger,
) *Worker {

	w := &Worker{
		channels: make(map[string]Channel, len(channels)),
		sink:     sink,
		logger:   logger,
	}
	for _, ch := range channels {
		w.channels[ch.Name()] = ch
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	backoff := cfg.Retry.Backoff

	w.srv = asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{QueueName: 1},
		RetryDelayFunc: func(int, error, *asynq.Task) time.Duration {
			return backoff
		},
		ErrorHandler: asynq.ErrorHandlerFunc(w.handleError),
		Logger:       logger.Sugar(),
	})
	return w
}

func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDeliver, w.ProcessTask)
	return w.srv.Start(mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p deliverPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	ch, ok := w.channels[p.Channel]
	if !ok {
		w.putDeadLetter(newDeadLetter(p.Channel, p.Message, 0, fmt.Errorf("channel %q not configured", p.Channel)))
		return fmt.Errorf("unknown channel %q: %w", p.Channel, asynq.SkipRetry)
	}

	if err := safeSend(ctx, ch, p.Message, 0); err != nil {
		return err
	}

	w.logger.Info("notification delivered",
		zap.String("channel", p.Channel),
		zap.Uint("booking_id", p.Message.BookingID),
	)
	return nil
}

// handleError dead-letters a task once its last retry has failed.
func (w *Worker) handleError(ctx context.Context, t *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	var p deliverPayload
	_ = json.Unmarshal(t.Payload(), &p)

	w.logger.Warn("notification attempt failed",
		zap.String("channel", p.Channel),
		zap.Int("attempt", retried+1),
		zap.Uint("booking_id", p.Message.BookingID),
		zap.Error(err),
	)

	if retried >= maxRetry {
		w.putDeadLetter(newDeadLetter(p.Channel, p.Message, retried+1, err))
	}
}

func (w *Worker) putDeadLetter(dl DeadLetter) {
	putDeadLetter(w.sink, dl, w.logger)
}
