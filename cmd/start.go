package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"content-catalog/core/database"
	"content-catalog/core/loader"
	"content-catalog/core/logger"
	"content-catalog/core/middleware/auth"
	"content-catalog/core/middleware/rayid"
	"content-catalog/core/taskqueue"
	"content-catalog/feature/blacklist"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "content-catalog/docs/swagger"
)

// queueSize bounds the deferred tasks waiting for the queue consumer.
const queueSize = 64

// @title Content Catalog API
// @version 1.0
// @description Origin files, records and cells of an indexed plugin load order.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long: `Indexes the configured load order, builds the catalog and serves it over HTTP.

The blacklist is persisted when a database is reachable and kept in memory otherwise.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database only backs the blacklist.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, blacklist kept in memory", zap.Error(err))
	} else {
		db = conn
		logg.Info("Connected to blacklist database", zap.String("driver", cfg.Database.Driver))
	}

	store := blacklist.NewStore(db, logg)
	if store.Persistent() {
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate blacklist: %w", err)
		}
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("failed to load blacklist: %w", err)
		}
	}

	host, err := loadHost(ctx, cfg, logg)
	if err != nil {
		return err
	}

	queue := taskqueue.New(queueSize, logg)
	queueDone := make(chan error, 1)
	go func() { queueDone <- queue.Run(ctx) }()

	svc := catalog.NewService(catalogDeps(cfg, host, store, queue, logg))
	counts := svc.Rebuild(ctx)
	logg.Info("Catalog built",
		zap.Int("items", counts[models.CategoryItem]),
		zap.Int("npcs", counts[models.CategoryNPC]),
		zap.Int("statics", counts[models.CategoryStatic]),
		zap.Int("cells", counts[models.CategoryCell]),
		zap.Int("origins", len(svc.SortedNames())),
	)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// rayid first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
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
	// API documentation stays public.
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	mgr := loader.NewManager(logg)
	mgr.Register(catalog.NewFeature(svc))
	mgr.Register(blacklist.NewFeature(store, logg))
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("addr", cfg.Server.ListenAddr()))
		listenErr <- app.Listen(cfg.Server.ListenAddr())
	}()

	select {
	case err := <-listenErr:
		stop()
		queue.Close()
		svc.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
		logg.Warn("Server shutdown incomplete", zap.Error(err))
	}
	svc.Close()
	queue.Close()
	<-queueDone
	return nil
}
