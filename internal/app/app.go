package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Integrum-Global/kronos/external/accountcheck"
	"github.com/Integrum-Global/kronos/internal/config"
	"github.com/Integrum-Global/kronos/internal/domain/account"
	cacherepo "github.com/Integrum-Global/kronos/internal/infrastructure/repository/cache"
	"github.com/Integrum-Global/kronos/internal/infrastructure/repository/memory"
	"github.com/Integrum-Global/kronos/internal/infrastructure/repository/postgres"
	"github.com/Integrum-Global/kronos/internal/interfaces/httpapi"
	basecache "github.com/Integrum-Global/kronos/internal/platform/cache"
	idgen "github.com/Integrum-Global/kronos/internal/platform/id"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
	"github.com/Integrum-Global/kronos/internal/platform/resilience"
	"github.com/Integrum-Global/kronos/internal/usecase"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	stateRepo, closeRepo, err := buildStateRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	accountService := usecase.NewAccountService(
		stateRepo,
		idgen.NewRandomGenerator(),
		buildAvailabilityChecker(cfg, logger),
		logger,
	)
	onboardingService := usecase.NewOnboardingService(stateRepo, logger)
	assessmentService := usecase.NewAssessmentService(stateRepo, accountService, onboardingService, logger)
	recomputeService := usecase.NewRecomputeService(stateRepo, logger)

	handler := httpapi.NewHandler(accountService, onboardingService, assessmentService, recomputeService, logger)
	router := httpapi.NewRouter(handler, accountService, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if closeRepo != nil {
		server.RegisterOnShutdown(func() {
			if err := closeRepo(); err != nil {
				logger.Warn("close state store", "error", err)
			}
		})
	}

	return server, nil
}

// buildStateRepository picks postgres when DB_URL is set and falls back to the
// in-memory store otherwise, wrapping either in the read-through cache when
// enabled.
func buildStateRepository(cfg config.Config, logger *logging.Logger) (account.StateRepository, func() error, error) {
	var (
		repo      account.StateRepository
		closeRepo func() error
	)

	if dbURL := strings.TrimSpace(cfg.DBURL); dbURL != "" {
		db, err := otelsqlx.Open("postgres", normalizeDBURL(dbURL, cfg.DBDisablePreparedBinary),
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(dbURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		repo = postgres.NewStateRepository(db)
		closeRepo = db.Close
		logger.Info("state store ready", "backend", "postgres", "db", dbNameFromURL(dbURL))
	} else {
		repo = memory.NewStateRepository()
		logger.Info("state store ready", "backend", "memory")
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewStateRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	return repo, closeRepo, nil
}

func buildAvailabilityChecker(cfg config.Config, logger *logging.Logger) usecase.AvailabilityChecker {
	if !cfg.AccountCheckEnabled {
		return nil
	}

	return accountcheck.NewClient(accountcheck.ClientConfig{
		BaseURL:    cfg.AccountCheckBaseURL,
		APIKey:     cfg.AccountCheckAPIKey,
		Timeout:    cfg.AccountCheckTimeout,
		MaxRetries: cfg.AccountCheckMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCheckCircuitEnabled,
			FailureThreshold: cfg.AccountCheckCircuitFailureCount,
			OpenTimeout:      cfg.AccountCheckCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCheckCircuitHalfOpenMaxReq,
		},
	})
}
