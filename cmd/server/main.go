// cmd/server/main.go
package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quizroom/quizroom/internal/broadcast"
	"github.com/quizroom/quizroom/internal/coordinator"
	"github.com/quizroom/quizroom/internal/handlers"
	"github.com/quizroom/quizroom/internal/middleware"
	"github.com/quizroom/quizroom/internal/quiz"
	"github.com/quizroom/quizroom/internal/store"
)

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func serve(ctx context.Context, cfg *Config) error {
	logger := logrus.New()
	if cfg.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var sessions store.Store
	if cfg.memoryStore {
		logger.Warn("using in-memory session store, sessions will not survive a restart")
		sessions = store.NewMemoryStore()
	} else {
		client, err := store.ConnectRedis(ctx, cfg.redisAddr, cfg.redisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		sessions = store.NewRedisStore(client, cfg.sessionTTL)
	}

	hub := broadcast.NewHub()
	coord := coordinator.New(sessions, hub, logger)

	mux := http.NewServeMux()

	logged := middleware.LogMiddleware(logger)
	mux.Handle("/session/create", logged(handlers.CreateSessionHandler(coord, logger)))
	mux.Handle("/session/join", logged(handlers.JoinSessionHandler(coord, logger)))
	mux.Handle("/session/active", logged(handlers.ActivePlayerHandler(coord, logger)))
	mux.Handle("/session/ws", logged(handlers.WSHandler(logger, coord, hub)))

	if cfg.databaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.databaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		mux.Handle("/quiz/questions", logged(handlers.QuizQuestionsHandler(quiz.New(pool), logger)))
	} else {
		logger.Info("no database configured, quiz question routes disabled")
	}

	logger.Infof("Running on %s", cfg.addr())
	return http.ListenAndServe(cfg.addr(), mux)
}
