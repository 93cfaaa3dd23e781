package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-picks/internal/config"
	"github.com/riskibarqy/fight-picks/internal/domain/catalog"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fight-picks/internal/interfaces/httpapi"
	"github.com/riskibarqy/fight-picks/internal/platform/id"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/platform/resilience"
	"github.com/riskibarqy/fight-picks/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const dbPingTimeout = 5 * time.Second

// App is the assembled service: the HTTP server plus the optional rescoring
// scheduler and the resources that must be released on shutdown.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RescoreScheduler

	closers []func() error
}

type stores struct {
	tx     usecase.Transactor
	events event.Repository
	picks  pick.Repository
	users  user.Repository
	close  func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load event catalog: %w", err)
	}
	logger.Info("event catalog loaded", "event_id", cat.EventID(), "fights", len(cat.Fights()))

	st, err := openStores(cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{closers: []func() error{st.close}}

	verifier, err := newTokenVerifier(cfg, logger.Named("auth"))
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	submissionSvc := usecase.NewSubmissionService(cat, st.tx, st.events, st.picks, st.users, id.NewUUIDGenerator(), logger.Named("submission"))
	scoringSvc := usecase.NewScoringService(st.events, st.picks, cfg.RescoreWorkers, cfg.RescoreJobTimeout, logger.Named("scoring"))
	leaderboardSvc := usecase.NewLeaderboardService(st.picks)
	resultSvc := usecase.NewResultService(st.events, logger.Named("result"))

	if cfg.RescoreSchedule != "" {
		scheduler, err := usecase.NewRescoreScheduler(cfg.RescoreSchedule, scoringSvc, cfg.RescoreJobTimeout, logger.Named("scheduler"))
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("build rescore scheduler: %w", err)
		}
		app.Scheduler = scheduler
	}

	handler := httpapi.NewHandler(cat, submissionSvc, scoringSvc, leaderboardSvc, resultSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, verifier, logger.Named("http"), cfg.CORSAllowedOrigins, cfg.InternalJobToken, cfg.RequestTimeout)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

// Close releases store connections. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if closeFn == nil {
			continue
		}
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openStores(cfg config.Config, logger *logging.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return stores{
			tx:     store,
			events: memory.NewEventRepository(store),
			picks:  memory.NewPickRepository(store),
			users:  memory.NewUserRepository(store),
			close:  func() error { return nil },
		}, nil
	case config.StoreDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return stores{}, err
		}
		logger.Info("postgres store connected", "db_name", dbNameFromURL(cfg.DBURL))
		return stores{
			tx:     postgres.NewTransactor(db),
			events: postgres.NewEventRepository(db),
			picks:  postgres.NewPickRepository(db),
			users:  postgres.NewUserRepository(db),
			close:  db.Close,
		}, nil
	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderJWT:
		verifier, err := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTLeeway, logger)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	case config.AuthProviderAnubis:
		return anubis.NewClient(
			newAnubisHTTPClient(cfg.AnubisTimeout),
			cfg.AnubisBaseURL,
			cfg.AnubisIntrospectURL,
			cfg.AnubisAdminKey,
			resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.AuthProvider)
	}
}

// newAnubisHTTPClient traces introspection calls as client spans under the
// request span.
func newAnubisHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "anubis " + r.Method + " " + r.URL.Path
			}),
		),
	}
}
