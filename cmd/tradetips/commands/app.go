package commands

import (
	"fmt"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/providers"
	"github.com/wonny/tradetips/internal/scoreboard"
	"github.com/wonny/tradetips/internal/scoring"
	"github.com/wonny/tradetips/internal/snapshot"
	"github.com/wonny/tradetips/internal/watchlist"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/database"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

// app holds the wired-up services shared by the CLI commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *database.DB
	redis     *redis.Client
	cache     *redis.Cache
	provider  contracts.MetricProvider
	scorer    *scoring.Scorer
	grader    *scoring.Grader
	watchlist *watchlist.Service
	snapshots *snapshot.Repository
	board     *scoreboard.Service
}

// newApp builds the common dependency graph. With needDB false the
// database is skipped so read-only commands work without Postgres.
func newApp(needDB bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flag overrides
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	provider, err := providers.New(cfg, log, redisClient)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		redis:    redisClient,
		cache:    redis.NewCache(redisClient, "tradetips"),
		provider: provider,
		scorer:   scoring.NewScorer(log),
		grader:   scoring.NewGrader(log),
	}

	if !needDB {
		return a, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.db = db

	a.watchlist = watchlist.NewService(watchlist.NewRepository(db.Pool), log)
	a.snapshots = snapshot.NewRepository(db.Pool)
	a.board = scoreboard.NewService(provider, a.scorer, a.grader, a.watchlist, a.snapshots, a.cache, log)

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
