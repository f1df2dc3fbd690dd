package profile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/circuit"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/requestcontext"
)

// Directory is the remote profile store.
type Directory interface {
	Fetch(ctx context.Context, profileID uuid.UUID) (Profile, error)
}

// Cache holds recently fetched profiles.
type Cache interface {
	Get(ctx context.Context, profileID uuid.UUID) (Profile, bool, error)
	Set(ctx context.Context, p Profile) error
}

// Lookup reads profiles through the cache, collapses concurrent misses for
// the same id and answers with a placeholder when the directory fails or the
// breaker is open.
type Lookup struct {
	directory Directory
	cache     Cache
	breaker   *circuit.Breaker
	group     singleflight.Group
	metrics   *Metrics
	logger    *slog.Logger
}

type Option func(*Lookup)

func WithCache(c Cache) Option {
	return func(l *Lookup) {
		l.cache = c
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(l *Lookup) {
		l.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(l *Lookup) {
		l.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Lookup) {
		l.logger = logger
	}
}

func NewLookup(directory Directory, opts ...Option) *Lookup {
	l := &Lookup{
		directory: directory,
		breaker:   circuit.New("profile-directory"),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GetProfile never fails. Callers detect degraded answers with
// Profile.Placeholder.
func (l *Lookup) GetProfile(ctx context.Context, profileID uuid.UUID) Profile {
	if l.cache != nil {
		p, ok, err := l.cache.Get(ctx, profileID)
		switch {
		case err != nil:
			l.logger.WarnContext(ctx, "profile cache read failed",
				"profile_id", profileID,
				"error", err,
			)
		case ok:
			if l.metrics != nil {
				l.metrics.CacheHits.Inc()
			}
			return p
		}
		if l.metrics != nil {
			l.metrics.CacheMisses.Inc()
		}
	}

	v, _, _ := l.group.Do(profileID.String(), func() (any, error) {
		return l.fetch(ctx, profileID), nil
	})
	return v.(Profile)
}

func (l *Lookup) fetch(ctx context.Context, profileID uuid.UUID) Profile {
	if l.directory == nil {
		return l.degrade(ctx, profileID, errors.New("no profile directory configured"))
	}
	if !l.breaker.Allow() {
		return l.degrade(ctx, profileID, sentinel.ErrUnavailable)
	}

	p, err := l.directory.Fetch(ctx, profileID)
	if errors.Is(err, sentinel.ErrNotFound) {
		l.recordSuccess(ctx)
		return l.degrade(ctx, profileID, err)
	}
	if err != nil {
		l.recordFailure(ctx)
		return l.degrade(ctx, profileID, err)
	}
	l.recordSuccess(ctx)

	if l.cache != nil {
		if err := l.cache.Set(ctx, p); err != nil {
			l.logger.WarnContext(ctx, "profile cache write failed",
				"profile_id", profileID,
				"error", err,
			)
		}
	}
	return p
}

func (l *Lookup) degrade(ctx context.Context, profileID uuid.UUID, cause error) Profile {
	if l.metrics != nil {
		l.metrics.Degraded.Inc()
	}
	l.logger.WarnContext(ctx, "profile lookup degraded",
		"request_id", requestcontext.RequestID(ctx),
		"profile_id", profileID,
		"code", dErrors.CodeDependencyDegraded,
		"error", cause,
	)
	return Placeholder(profileID)
}

func (l *Lookup) recordFailure(ctx context.Context) {
	if _, change := l.breaker.RecordFailure(); change.Opened {
		l.logger.WarnContext(ctx, "profile directory circuit opened", "breaker", l.breaker.Name())
		if l.metrics != nil {
			l.metrics.BreakerState.Set(1)
		}
	}
}

func (l *Lookup) recordSuccess(ctx context.Context) {
	if _, change := l.breaker.RecordSuccess(); change.Closed {
		l.logger.InfoContext(ctx, "profile directory circuit closed", "breaker", l.breaker.Name())
		if l.metrics != nil {
			l.metrics.BreakerState.Set(0)
		}
	}
}

// Health reports whether the directory is currently considered reachable.
func (l *Lookup) Health() error {
	if l.breaker.IsOpen() {
		return dErrors.New(dErrors.CodeDependencyDegraded, "profile directory circuit is open")
	}
	return nil
}
