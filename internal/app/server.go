package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"fairness-platform/internal/audit"
	"fairness-platform/internal/cache"
	"fairness-platform/internal/config"
	"fairness-platform/internal/db"
	"fairness-platform/internal/event"
	"fairness-platform/internal/fair"
	"fairness-platform/internal/games"
	"fairness-platform/internal/jobs"
	"fairness-platform/internal/logger"
	"fairness-platform/internal/monitoring"
	"fairness-platform/internal/store"
	"fairness-platform/internal/ws"
)

type Server struct {
	app  *fiber.App
	jobs *jobs.Manager
	port string
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init()
	monitoring.Init()

	database := db.Init(cfg.DBPath)
	st := store.NewSQLite(database)

	mode := fair.ParseMode(cfg.FairnessMode)
	bus := event.NewBus()
	service := fair.NewService(mode, cfg.StrictClose, st, games.Lookup, bus, logger.Log)
	verifier := fair.NewVerifier(st, games.Lookup)

	hub := ws.NewHub()
	fair.RegisterConsumers(bus, audit.New(database), hub)

	commitments := cache.New(cfg.RedisAddr)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "mode": string(mode)})
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/feed", websocket.New(hub.Handler))

	fair.RegisterRoutes(app, service, verifier, bus, commitments)

	manager := jobs.New()
	if mode == fair.ModeSessionNonce {
		manager.Register(&fair.Sweeper{
			Service:  service,
			TTL:      cfg.SessionTTL,
			Interval: cfg.SweepInterval,
			Log:      logger.Log,
		})
	}

	return &Server{app: app, jobs: manager, port: cfg.Port}, nil
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.jobs.Start(ctx)
	return s.app.Listen(":" + s.port)
}
