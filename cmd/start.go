package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"resource-manager/core/loader"
	"resource-manager/core/logger"
	"resource-manager/core/middleware/auth"
	"resource-manager/core/middleware/rayid"
	"resource-manager/core/resource"
	"resource-manager/feature/integrity"
	"resource-manager/feature/resources"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "resource-manager/docs/swagger"
)

// @title Resource Manager API
// @version 1.0
// @description Admin API for the reference-counted resource cache.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the resource manager",
	Long:  `Starts the resource scheduler and the admin HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.Close()
		logg := rt.logg
		zap.ReplaceGlobals(logg)

		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		app := newApp(rt)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)

		// Scheduler owns the driver: it flushes and, per policy, cleans up
		scheduler := resource.NewScheduler(rt.manager, nil, logg)
		g.Go(func() error {
			return scheduler.Run(gctx)
		})

		g.Go(func() error {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			return app.Listen(rt.cfg.Server.Address())
		})

		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down server...")
			return app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout())
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		n, err := rt.manager.CleanUp()
		logg.Info("Resource manager stopped", zap.Int("evicted", n), zap.Int("remaining", rt.manager.Len()))
		return err
	},
}

// newApp builds the Fiber app with middleware, metrics and every feature.
func newApp(rt *runtime) *fiber.App {
	logg := rt.logg

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// 1. RayID first so every later log line carries it
	app.Use(rayid.New())

	// 2. Request logging
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// 3. Public routes
	app.Get("/swagger/*", swagger.HandlerDefault)
	if path := rt.cfg.Server.MetricsPath; path != "" {
		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(rt.prom, promhttp.HandlerOpts{}))
		app.Get(path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	// 4. Everything registered after this requires the API key
	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

	intOpts := []integrity.Option{}
	if rt.db != nil {
		intOpts = append(intOpts, integrity.WithDatabase(rt.db), integrity.WithCatalog(rt.catalog))
	}
	if rt.pack != nil {
		intOpts = append(intOpts, integrity.WithPack(rt.pack))
	}

	resOpts := []resources.Option{resources.WithStats(rt.driver)}
	if rt.catalog != nil {
		resOpts = append(resOpts, resources.WithCatalog(rt.catalog))
	}

	mgr := loader.NewManager()
	mgr.Register(resources.NewFeature(resources.NewService(rt.manager, rt.registry, logg, resOpts...)))
	mgr.Register(integrity.NewFeature(integrity.NewService(rt.store, rt.cfg.Storage.Bucket, logg, intOpts...)))
	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}

func init() {
	RootCmd.AddCommand(startCmd)
}
