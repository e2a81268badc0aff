package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/palpiteiro/prediction-league/internal/config"
	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	"github.com/palpiteiro/prediction-league/internal/infrastructure/account"
	cacherepo "github.com/palpiteiro/prediction-league/internal/infrastructure/repository/cache"
	"github.com/palpiteiro/prediction-league/internal/infrastructure/repository/memory"
	"github.com/palpiteiro/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/palpiteiro/prediction-league/internal/interfaces/httpapi"
	"github.com/palpiteiro/prediction-league/internal/platform/cache"
	idgen "github.com/palpiteiro/prediction-league/internal/platform/id"
	"github.com/palpiteiro/prediction-league/internal/platform/logging"
	"github.com/palpiteiro/prediction-league/internal/platform/resilience"
	"github.com/palpiteiro/prediction-league/internal/usecase"
)

// App owns the HTTP server plus the resources it has to release on
// shutdown: the DB pool and the background stats refresher.
type App struct {
	Server    *http.Server
	db        *sqlx.DB
	refresher *statsRefresher
	logger    *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		matchRepo  match.Repository
		leagueRepo league.Repository
		betRepo    bet.Repository
		statsRepo  stats.Repository
		db         *sqlx.DB
	)

	if strings.TrimSpace(cfg.DBURL) == "" {
		// No DB configured: run on seeded in-memory repositories so the
		// service stays demoable without infrastructure.
		now := time.Now()
		memMatches := memory.NewMatchRepository(memory.SeedMatches(now))
		memLeagues := memory.NewLeagueRepository(memory.SeedLeagues(now), memory.SeedMembers(now))
		matchRepo = memMatches
		leagueRepo = memLeagues
		betRepo = memory.NewBetRepository(memMatches, memLeagues, memory.SeedBets(now))
		statsRepo = memory.NewUserStatsRepository()
		logger.Info("repositories ready", "backend", "memory", "reason", "DB_URL empty")
	} else {
		dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		opened, err := otelsqlx.Connect("postgres", dsn,
			otelsql.WithDBName(dbNameFromURL(dsn)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		db = opened
		matchRepo = postgres.NewMatchRepository(db)
		leagueRepo = postgres.NewLeagueRepository(db)
		betRepo = postgres.NewBetRepository(db)
		statsRepo = postgres.NewUserStatsRepository(db)
		logger.Info("repositories ready", "backend", "postgres", "db_name", dbNameFromURL(dsn))
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
		betRepo = cacherepo.NewBetRepository(betRepo, store)
		logger.Info("read-through cache enabled", "ttl", cfg.CacheTTL.String())
	}

	matchSvc := usecase.NewMatchService(matchRepo)
	rankingSvc := usecase.NewRankingService(leagueRepo, betRepo, matchSvc)
	statsSvc := usecase.NewStatsService(leagueRepo, betRepo, statsRepo, cfg.StatsRefreshInterval, cfg.StatsRefreshWorkers)
	leagueSvc := usecase.NewLeagueService(leagueRepo, statsSvc, idgen.NewRandomGenerator())
	betSvc := usecase.NewBetService(betRepo, matchRepo, leagueRepo, statsSvc, idgen.NewRandomGenerator())

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(matchSvc, rankingSvc, leagueSvc, betSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	refresher, err := startStatsRefresher(statsSvc, cfg.StatsRefreshJobInterval, logger)
	if err != nil {
		return nil, fmt.Errorf("start stats refresher: %w", err)
	}

	return &App{
		Server:    server,
		db:        db,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// Shutdown stops the HTTP server, the background refresher and the DB
// pool, in that order.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = err
	}

	if a.refresher != nil {
		a.refresher.Stop()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
