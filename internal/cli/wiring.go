package cli

import (
	"context"
	"time"

	"clap-quiz/internal/app"
	"clap-quiz/internal/config"
	"clap-quiz/internal/domain"
	"clap-quiz/internal/infra/file"
	"clap-quiz/internal/infra/memory"
	pgloader "clap-quiz/internal/infra/postgres"
	infraredis "clap-quiz/internal/infra/redis"
	"clap-quiz/internal/logger"
	"clap-quiz/internal/notify"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// runtime holds the wired service plus the resources that need closing.
type runtime struct {
	service *app.QuizService
	redis   *redis.Client
	pool    *pgxpool.Pool
}

func (rt *runtime) Close() {
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	format := cfg.Log.Format
	if format == "" {
		format = "pretty"
	}
	return logger.Setup(cfg.Log.Level, format)
}

func newRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// buildRuntime wires bank sources, session store and reporters from cfg.
// Redis and Postgres are optional; without them everything stays in memory.
func buildRuntime(ctx context.Context, cfg config.Config, log zerolog.Logger) (*runtime, error) {
	rt := &runtime{}

	var loader memory.BankLoader = memory.NewStaticBankLoader(domain.DefaultBank())
	if cfg.Quiz.BankFile != "" {
		fileLoader, err := file.Load(cfg.Quiz.BankFile)
		if err != nil {
			return nil, err
		}
		loader = fileLoader
		log.Info().Str("path", cfg.Quiz.BankFile).Int("banks", len(fileLoader.Banks())).Msg("question banks loaded from file")
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		rt.pool = pool
		loader = pgloader.NewBankLoader(pool)
	}

	client, err := newRedisClient(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.redis = client

	bankTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var banks app.BankRepository
	var store app.SessionRepository
	reporters := notify.Multi{notify.NewLogReporter(log)}
	if client != nil {
		banks = infraredis.NewBankRepository(client, loader, bankTTL)
		store = infraredis.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
		reporters = append(reporters, infraredis.NewScoreQueue(client))
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
		store = memory.NewSessionStore()
	}

	rt.service = app.NewQuizService(store, banks, reporters, log)
	return rt, nil
}
