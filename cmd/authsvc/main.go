package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	auth "github.com/lmller/go-authsvc"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := auth.LoadConfig()
	if err != nil {
		return err
	}

	lgr := serviceLogger{}

	if cfg.IsInsecureSecret() {
		lgr.Info("SECRET_KEY not set, using the insecure development default")
	}

	db, err := auth.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := auth.CreateSchema(ctx, db); err != nil {
		return err
	}

	users := auth.NewUsersRepository(db)
	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenTTL, cfg.TokenIssuer, lgr)
	gate := auth.NewGate(tokens, users).WithLogger(lgr)
	controller := auth.NewController(users, tokens, auth.WithControllerLogger(lgr))

	app := auth.NewApp(lgr)
	app.Use(requestid.New())
	app.Use(logger.New())

	auth.RegisterAuthRoutes(app, controller, gate)

	errc := make(chan error, 1)
	go func() {
		lgr.Info("listening on %s", cfg.HTTPAddr)
		errc <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		lgr.Info("shutting down")
		return app.Shutdown()
	}
}

type serviceLogger struct{}

func (serviceLogger) Debug(format string, args ...any) { log.Printf("[DBG] "+format, args...) }
func (serviceLogger) Info(format string, args ...any)  { log.Printf("[INF] "+format, args...) }
func (serviceLogger) Error(format string, args ...any) { log.Printf("[ERR] "+format, args...) }
