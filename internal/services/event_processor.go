package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tally/internal/amqp"
)

// EventSource delivers events to handler until ctx is done. Returning an
// error from handler asks the source to redeliver.
type EventSource interface {
	Consume(ctx context.Context, handler func(context.Context, *amqp.ExpenseEvent) error) error
}

// EventHandler applies one event.
type EventHandler func(ctx context.Context, event *amqp.ExpenseEvent) error

// EventProcessorConfig holds configuration for the event processor
type EventProcessorConfig struct {
	// RestartDelay is how long to wait before consuming again after the
	// source fails (default: 10s)
	RestartDelay time.Duration

	// MaxAttempts is how many times one event is tried before it is
	// dropped (default: 3)
	MaxAttempts int
}

// DefaultEventProcessorConfig returns sensible defaults
func DefaultEventProcessorConfig() EventProcessorConfig {
	return EventProcessorConfig{
		RestartDelay: 10 * time.Second,
		MaxAttempts:  3,
	}
}

// EventStats counts handled events.
type EventStats struct {
	Processed int64
	Retried   int64
	Dropped   int64
}

// EventProcessor runs a handler over an event source, restarting the
// consumer when it fails and bounding redeliveries per event.
type EventProcessor struct {
	source  EventSource
	handler EventHandler
	config  EventProcessorConfig

	// Lifecycle management
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	attempts map[string]int

	processed atomic.Int64
	retried   atomic.Int64
	dropped   atomic.Int64
}

func NewEventProcessor(source EventSource, handler EventHandler, config EventProcessorConfig) *EventProcessor {
	if config.RestartDelay <= 0 {
		config.RestartDelay = DefaultEventProcessorConfig().RestartDelay
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &EventProcessor{
		source:   source,
		handler:  handler,
		config:   config,
		attempts: make(map[string]int),
	}
}

// Start begins consuming. Returns an error if already running.
func (p *EventProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("event processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Event processor started",
		"component", "worker",
		"restart_delay", p.config.RestartDelay,
		"max_attempts", p.config.MaxAttempts)
	return nil
}

// Stop signals the loop and waits for it, bounded by ctx.
func (p *EventProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		slog.InfoContext(ctx, "Event processor stopped gracefully", "component", "worker")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Event processor stop timed out", "component", "worker")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

func (p *EventProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *EventProcessor) Stats() EventStats {
	return EventStats{
		Processed: p.processed.Load(),
		Retried:   p.retried.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *EventProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-p.stopCh:
			cancel()
		case <-consumeCtx.Done():
		}
	}()

	for {
		err := p.source.Consume(consumeCtx, p.handle)
		if consumeCtx.Err() != nil {
			return
		}
		if err == nil {
			err = errors.New("consumer returned without error")
		}
		slog.ErrorContext(ctx, "Event consumer stopped, restarting",
			"component", "worker",
			"error", err,
			"restart_delay", p.config.RestartDelay)

		select {
		case <-consumeCtx.Done():
			return
		case <-time.After(p.config.RestartDelay):
		}
	}
}

// handle runs the handler and decides between ack, redelivery and drop.
func (p *EventProcessor) handle(ctx context.Context, event *amqp.ExpenseEvent) error {
	err := p.handler(ctx, event)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err == nil {
		delete(p.attempts, event.ID)
		p.processed.Add(1)
		return nil
	}

	p.attempts[event.ID]++
	attempt := p.attempts[event.ID]
	if attempt >= p.config.MaxAttempts {
		delete(p.attempts, event.ID)
		p.dropped.Add(1)
		slog.ErrorContext(ctx, "Event failed permanently after max attempts",
			"component", "worker",
			"event_id", event.ID,
			"event_type", event.Type,
			"attempts", attempt,
			"error", err)
		return nil
	}

	p.retried.Add(1)
	slog.WarnContext(ctx, "Event processing failed, requeueing",
		"component", "worker",
		"event_id", event.ID,
		"attempt", attempt,
		"error", err)
	return err
}
