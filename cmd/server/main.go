package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	derogationhandler "doctorat/internal/derogation/handler"
	derogationmetrics "doctorat/internal/derogation/metrics"
	derogationmodels "doctorat/internal/derogation/models"
	derogationservice "doctorat/internal/derogation/service"
	derogationstore "doctorat/internal/derogation/store"
	"doctorat/internal/duration"
	"doctorat/internal/duration/adapters"
	durationhandler "doctorat/internal/duration/handler"
	httpapi "doctorat/internal/http"
	inscriptionhandler "doctorat/internal/inscription/handler"
	inscriptionmetrics "doctorat/internal/inscription/metrics"
	inscriptionservice "doctorat/internal/inscription/service"
	inscriptionstore "doctorat/internal/inscription/store"
	"doctorat/internal/platform/config"
	"doctorat/internal/platform/httpserver"
	"doctorat/internal/platform/kafka"
	"doctorat/internal/platform/logger"
	"doctorat/internal/platform/metrics"
	"doctorat/internal/platform/postgres"
	"doctorat/internal/platform/redis"
	"doctorat/internal/platform/tracing"
	"doctorat/internal/profile"
	soutenancehandler "doctorat/internal/soutenance/handler"
	soutenancemetrics "doctorat/internal/soutenance/metrics"
	soutenanceservice "doctorat/internal/soutenance/service"
	soutenancestore "doctorat/internal/soutenance/store"
	"doctorat/pkg/platform/circuit"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/events/outbox"
)

const startupTimeout = 15 * time.Second

// main wires the workflows to their backends and runs the HTTP server next
// to the background workers until a signal arrives.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

type stores struct {
	inscriptions inscriptionservice.Store
	derogations  derogationservice.Store
	soutenances  soutenanceservice.Store
	outbox       *outbox.PostgresStore
	db           *sql.DB
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	shutdownTracing, err := tracing.Setup(startCtx, cfg.OTLPEndpoint, cfg.TraceSampleRatio)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("trace flush failed", "error", err)
		}
	}()

	st, err := openStores(startCtx, cfg, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	eventMetrics := events.NewMetrics()
	bus := openBus(startCtx, cfg, log, eventMetrics)
	defer bus.close()

	// Without an outbox, events go straight to the bus without waiting for
	// the ack. The relay needs the ack to mark rows published.
	sink := bus.async
	var relay *outbox.Relay
	if st.outbox != nil {
		sink = st.outbox
		relay = outbox.NewRelay(st.outbox, bus.sync, outbox.Config{
			Interval:    cfg.OutboxPollInterval,
			MaxAttempts: cfg.OutboxMaxAttempts,
		}, outbox.WithRelayLogger(log), outbox.WithRelayMetrics(eventMetrics))
	}
	emitter := events.NewEmitter(sink, events.WithLogger(log), events.WithMetrics(eventMetrics))

	redisClient, err := redis.New(startCtx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, profile cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	profiles := newProfileLookup(cfg, redisClient, log)

	durations := duration.New(adapters.NewRegistrations(st.inscriptions), nil, duration.WithLogger(log))
	derogations := derogationservice.New(st.derogations,
		derogationservice.WithLogger(log),
		derogationservice.WithEmitter(emitter),
		derogationservice.WithMetrics(derogationmetrics.New()),
		derogationservice.WithProfiles(profiles),
		derogationservice.WithYearCalculator(durations),
		derogationservice.WithAcademicCycle(derogationmodels.AcademicCycle{
			EndMonth: time.Month(cfg.CycleEndMonth),
			EndDay:   cfg.CycleEndDay,
		}),
	)
	durations.SetExemptionReader(adapters.NewExemptions(derogations))
	inscriptions := inscriptionservice.New(st.inscriptions,
		inscriptionservice.WithLogger(log),
		inscriptionservice.WithEmitter(emitter),
		inscriptionservice.WithMetrics(inscriptionmetrics.New()),
		inscriptionservice.WithEligibility(durations),
	)
	soutenances := soutenanceservice.New(st.soutenances,
		soutenanceservice.WithLogger(log),
		soutenanceservice.WithEmitter(emitter),
		soutenanceservice.WithMetrics(soutenancemetrics.New()),
		soutenanceservice.WithProfiles(profiles),
	)

	routerCfg := httpapi.Config{
		Logger:  log,
		Metrics: metrics.New(),
		Workflows: []httpapi.Registrar{
			inscriptionhandler.New(inscriptions, log),
			derogationhandler.New(derogations, log),
			soutenancehandler.New(soutenances, log),
			durationhandler.New(durations, log),
		},
		Checks:      healthChecks(st, bus.async, redisClient, profiles),
		AdminToken:  cfg.AdminToken,
		ExpirySweep: derogations.ExpireDue,
	}
	if relay != nil {
		routerCfg.OutboxRelay = relay.RelayOnce
	}
	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(routerCfg))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting doctorat", "addr", cfg.Addr, "postgres", st.db != nil)
		return httpserver.Run(gctx, srv, log)
	})
	g.Go(func() error {
		return derogationservice.NewExpiryWorker(derogations, cfg.ExpirySweepInterval).Run(gctx)
	})
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	if !cfg.UsesPostgres() {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return stores{
			inscriptions: inscriptionstore.NewInMemoryStore(),
			derogations:  derogationstore.NewInMemoryStore(),
			soutenances:  soutenancestore.NewInMemoryStore(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, err
	}
	if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return stores{}, err
	}
	return stores{
		inscriptions: inscriptionstore.NewPostgres(db),
		derogations:  derogationstore.NewPostgres(db),
		soutenances:  soutenancestore.NewPostgres(db),
		outbox:       outbox.NewPostgresStore(db),
		db:           db,
	}, nil
}

type healthSink interface {
	Health(ctx context.Context) error
}

// eventBus is where events leave the process. async does not wait for the
// broker; sync does.
type eventBus struct {
	async events.Sink
	sync  events.Sink
	close func()
}

// openBus uses Kafka when brokers are configured, the structured log otherwise.
func openBus(ctx context.Context, cfg config.Config, log *slog.Logger, m *events.Metrics) eventBus {
	logBus := func() eventBus {
		sink := events.NewLogSink(log)
		return eventBus{async: sink, sync: sink, close: func() {}}
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return logBus()
	}
	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix,
		kafka.WithLogger(log),
		kafka.WithMetrics(m),
	)
	if err != nil {
		log.Warn("kafka producer unavailable, events go to the log", "error", err)
		return logBus()
	}
	if err := producer.EnsureTopics(ctx); err != nil {
		log.Warn("kafka topic provisioning failed", "error", err)
	}
	return eventBus{async: producer, sync: producer.Sync(), close: producer.Close}
}

func newProfileLookup(cfg config.Config, redisClient *redis.Client, log *slog.Logger) *profile.Lookup {
	var directory profile.Directory
	if cfg.Profile.BaseURL != "" {
		directory = profile.NewHTTPDirectory(cfg.Profile.BaseURL, cfg.Profile.Timeout)
	}
	opts := []profile.Option{
		profile.WithBreaker(circuit.New("profile-directory")),
		profile.WithMetrics(profile.NewMetrics()),
		profile.WithLogger(log),
	}
	if redisClient != nil {
		opts = append(opts, profile.WithCache(profile.NewRedisCache(redisClient.Client, cfg.Profile.CacheTTL)))
	}
	return profile.NewLookup(directory, opts...)
}

func healthChecks(st stores, b events.Sink, redisClient *redis.Client, profiles *profile.Lookup) []httpapi.Check {
	checks := []httpapi.Check{
		{Name: "profile_directory", Run: func(context.Context) error { return profiles.Health() }},
	}
	if st.db != nil {
		checks = append(checks, httpapi.Check{Name: "postgres", Critical: true, Run: st.db.PingContext})
	}
	if redisClient != nil {
		checks = append(checks, httpapi.Check{Name: "redis", Run: redisClient.Health})
	}
	if hs, ok := b.(healthSink); ok {
		checks = append(checks, httpapi.Check{Name: "kafka", Run: hs.Health})
	}
	return checks
}
