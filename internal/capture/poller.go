// Package capture drives the polling loop that feeds frames to the scan
// service: two states (idle and scanning), a fixed-interval timer, and a
// guard flag so results arriving after Stop are discarded.
package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"framescan/internal/frames"
	"framescan/internal/models"
)

// Submitter abstracts the scan service call so tests can stub the network.
type Submitter interface {
	Scan(ctx context.Context, frame []byte) (models.ScanResult, error)
}

// Poller captures a frame from its source on every tick and submits it.
// Start and Stop are safe to call in any order and any number of times.
type Poller struct {
	source   frames.Source
	client   Submitter
	interval time.Duration
	onResult func(models.ScanResult)

	mu       sync.Mutex
	scanning bool
	cancel   context.CancelFunc
	done     chan struct{}

	// ticks overrides the interval timer in tests; nil means a real ticker.
	ticks <-chan time.Time
}

func NewPoller(source frames.Source, client Submitter, interval time.Duration, onResult func(models.ScanResult)) *Poller {
	return &Poller{
		source:   source,
		client:   client,
		interval: interval,
		onResult: onResult,
	}
}

// Start acquires the frame source and begins the polling loop. Starting an
// already-scanning poller is a no-op: no second source probe, no second
// timer. A source that fails its initial probe leaves the poller idle.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.scanning {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Probe the source once so acquisition failures surface here instead of
	// silently on every tick. ErrNotReady is fine: the stream is warming up.
	if _, err := p.source.Grab(ctx); err != nil && !errors.Is(err, frames.ErrNotReady) {
		cancel()
		return err
	}

	p.cancel = cancel
	p.done = make(chan struct{})
	p.scanning = true
	go p.loop(ctx)

	return nil
}

// Stop cancels the timer and waits for the loop to exit. Stopping an idle
// poller is a no-op. In-flight scan requests are allowed to complete; their
// results are discarded by the scanning guard.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.scanning {
		p.mu.Unlock()
		return
	}
	p.scanning = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticks := p.ticks
	if ticks == nil {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	frame, err := p.source.Grab(ctx)
	if errors.Is(err, frames.ErrNotReady) {
		// Skip the tick; frames are never queued.
		return
	}
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("Frame capture failed", "err", err)
		}
		return
	}

	result, err := p.client.Scan(ctx, frame)
	if err != nil {
		// One failed request never halts the loop.
		if ctx.Err() == nil {
			slog.Warn("Scan request failed", "err", err)
		}
		return
	}

	if !p.isScanning() {
		return
	}
	if p.onResult != nil {
		p.onResult(result)
	}
}

func (p *Poller) isScanning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scanning
}
