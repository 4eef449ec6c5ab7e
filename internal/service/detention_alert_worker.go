package service

import (
	"context"
	"log"
	"sync"
	"time"

	"portops/internal/domain"
	"portops/internal/port"
)

// DetentionAlertConfig holds settings for the detention alert worker.
type DetentionAlertConfig struct {
	PollInterval time.Duration
	// RemindAfter is the minimum gap between two urges of the same container.
	RemindAfter time.Duration
	Concurrency int
}

// DetentionAlertWorker periodically urges the depot about containers that are
// close to their detention deadline and still lack the bonded-warehouse
// declaration.
type DetentionAlertWorker struct {
	containers       port.ContainerRepository
	containerService ContainerService
	cfg              DetentionAlertConfig
	now              Clock
	wg               sync.WaitGroup
}

// NewDetentionAlertWorker creates a new DetentionAlertWorker.
func NewDetentionAlertWorker(
	containers port.ContainerRepository,
	containerService ContainerService,
	cfg DetentionAlertConfig,
	clock Clock,
) *DetentionAlertWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &DetentionAlertWorker{
		containers:       containers,
		containerService: containerService,
		cfg:              cfg,
		now:              clockOrSystem(clock),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight urges have finished.
func (w *DetentionAlertWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("detentionAlertWorker: started (poll=%s, remindAfter=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.RemindAfter, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("detentionAlertWorker: shutting down, waiting for in-flight urges...")
			w.wg.Wait()
			log.Printf("detentionAlertWorker: shutdown complete")
			return
		case <-ticker.C:
			if n, err := w.Sweep(ctx); err != nil {
				if ctx.Err() == nil {
					log.Printf("detentionAlertWorker: sweep error: %v", err)
				}
			} else if n > 0 {
				log.Printf("detentionAlertWorker: urged %d containers", n)
			}
		}
	}
}

// Sweep urges every due container once and returns how many were dispatched.
func (w *DetentionAlertWorker) Sweep(ctx context.Context) (int, error) {
	all, err := w.containers.List(ctx, port.ContainerFilter{})
	if err != nil {
		return 0, err
	}

	now := w.now()
	sem := make(chan struct{}, w.cfg.Concurrency)
	dispatched := 0

	for i := range all {
		c := all[i] // copy for goroutine
		if !w.due(&c, now) {
			continue
		}
		dispatched++

		sem <- struct{}{} // acquire
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer func() { <-sem }() // release

			// Urges finish even if the poll context is canceled mid-sweep.
			urgeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()

			if _, err := w.containerService.Urge(urgeCtx, c.ID); err != nil {
				log.Printf("detentionAlertWorker: urge container %s failed: %v", c.ContainerNo, err)
			}
		}()
	}

	w.wg.Wait()
	return dispatched, nil
}

func (w *DetentionAlertWorker) due(c *domain.Container, now time.Time) bool {
	if c.Status == domain.ContainerStatusCompleted || c.TkDnlOla != "" {
		return false
	}
	if c.LastUrgedAt != nil && now.Sub(*c.LastUrgedAt) < w.cfg.RemindAfter {
		return false
	}
	return w.containerService.ClassifyDetention(c.DetExpiry) == domain.DetentionUrgent
}
