package service

import (
	"context"
	"errors"
	"time"

	"doctorat/internal/derogation/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/requestcontext"
)

// ExpireDue moves approved derogations past their expiration date to EXPIRED.
// Records changed concurrently are skipped and picked up by the next sweep.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)
	ctx = requestcontext.WithTime(ctx, now)
	ctx = requestcontext.WithActor(ctx, id.ActorID{}, id.RoleSystem)

	due, err := s.store.ListExpirable(ctx, now)
	if err != nil {
		return 0, wrapDerogationErr(err)
	}

	expired := 0
	for _, d := range due {
		from := d.Status
		expected := d.Version
		if err := d.Apply(models.Decision{Action: models.ActionExpire, At: now, Cycle: s.cycle}); err != nil {
			continue
		}
		if err := s.store.Update(ctx, d, expected); err != nil {
			if errors.Is(err, sentinel.ErrConflict) || errors.Is(err, sentinel.ErrNotFound) {
				s.logger.InfoContext(ctx, "skipping derogation changed during expiry sweep", "derogation_id", d.ID)
				continue
			}
			return expired, wrapDerogationErr(err)
		}
		expired++
		if s.metrics != nil {
			s.metrics.IncExpired()
		}
		s.committed(ctx, d, from, "expired on "+d.ExpirationDate.Format(time.DateOnly))
	}
	return expired, nil
}

// ExpiryWorker runs ExpireDue on a fixed interval.
type ExpiryWorker struct {
	service  *Service
	interval time.Duration
}

func NewExpiryWorker(service *Service, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpiryWorker{service: service, interval: interval}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if n, err := w.service.ExpireDue(ctx); err != nil {
			w.service.logger.ErrorContext(ctx, "derogation expiry sweep failed", "error", err)
		} else if n > 0 {
			w.service.logger.InfoContext(ctx, "derogation expiry sweep", "expired", n)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
