// Package web assembles the fiber application: middleware, handler
// registration and the service lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/takapay/takapay/internal/config"
	fiberlogger "github.com/takapay/takapay/internal/logger/adapter/fiber"
	"github.com/takapay/takapay/internal/web/handler"
	"github.com/takapay/takapay/internal/web/handler/admin/banners"
	"github.com/takapay/takapay/internal/web/handler/admin/featureflags"
	"github.com/takapay/takapay/internal/web/handler/admin/login"
	"github.com/takapay/takapay/internal/web/handler/admin/payoutwallets"
	"github.com/takapay/takapay/internal/web/handler/admin/requests"
	"github.com/takapay/takapay/internal/web/handler/media"
	"github.com/takapay/takapay/internal/web/handler/notifications"
	"github.com/takapay/takapay/internal/web/handler/ping"
	"github.com/takapay/takapay/internal/web/handler/social"
	"github.com/takapay/takapay/internal/web/handler/somiti"
	"github.com/takapay/takapay/internal/web/handler/tasks"
	"github.com/takapay/takapay/internal/web/handler/transactions"
	"github.com/takapay/takapay/internal/web/handler/users"
)

// CheckAlivePath answers load balancer health checks; it is excluded from the
// access log.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the service down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive reports 200 while the service accepts traffic and 503 once a
// graceful shutdown has started.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if s.alive.Load() {
		return c.SendString("OK")
	}

	return c.SendStatus(fiber.StatusServiceUnavailable)
}

// New creates a new web service with the given configuration and adapters.
func New(cfg *config.Config, deps *handler.Deps) (*Service, error) {
	if cfg == nil || deps == nil {
		return nil, errors.New("cfg or deps is nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192, //nolint: mnd
			AppName:        "TakaPay",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New())
	}

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg:          cfg,
		App:          app,
		deps:         deps,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes and guards)
	handlers := []handler.Service{
		&login.Handler,
		&featureflags.Handler,
		&banners.Handler,
		&payoutwallets.Handler,
		&requests.Handler,
		&users.Handler,
		&transactions.Handler,
		&media.Handler,
		&social.Handler,
		&somiti.Handler,
		&tasks.Handler,
		&notifications.Handler,
		&ping.Handler,
	}

	for _, h := range handlers {
		if err := h.Init(app, cfg, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}
