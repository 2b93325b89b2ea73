package cmd

import (
	"context"
	"fmt"

	"content-catalog/core/config"
	"content-catalog/core/esp"
	"content-catalog/core/logger"
	"content-catalog/core/storage"
	"content-catalog/feature/catalog"
	"content-catalog/feature/offline"

	"go.uber.org/zap"
)

// setup loads the configuration and builds the logger shared by all
// commands.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, l, nil
}

// openSource returns the plugin source selected by the catalog config.
func openSource(ctx context.Context, cfg *config.Config) (esp.Source, error) {
	if cfg.Catalog.Source == catalog.SourceDir {
		return esp.DirSource{Root: cfg.Catalog.DataDir}, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	src := esp.BucketSource{
		Client: client,
		Bucket: cfg.Storage.Bucket,
		Prefix: cfg.Catalog.BucketPrefix,
	}
	if err := src.Check(ctx); err != nil {
		return nil, err
	}
	return src, nil
}

// loadHost reads the configured load order from the plugin source. Without
// a plugins.txt every plugin of the source is loaded, masters first.
func loadHost(ctx context.Context, cfg *config.Config, l *zap.Logger) (*offline.Host, error) {
	src, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var order []string
	if cfg.Catalog.LoadOrder != "" {
		order, err = offline.ReadLoadOrder(cfg.Catalog.LoadOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to read load order: %w", err)
		}
	} else {
		names, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		order = offline.DefaultLoadOrder(names)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no plugins found in %s source", cfg.Catalog.Source)
	}

	l.Info("Loading plugins", zap.String("source", cfg.Catalog.Source), zap.Int("plugins", len(order)))
	return offline.Load(ctx, src, order, l)
}

// catalogDeps wires an offline host into catalog collaborators.
func catalogDeps(cfg *config.Config, host *offline.Host, blacklist catalog.Blacklist, scheduler catalog.Scheduler, l *zap.Logger) catalog.Deps {
	return catalog.Deps{
		Content:        host,
		Containers:     host,
		Live:           host,
		Blacklist:      blacklist,
		CellNames:      host,
		Scheduler:      scheduler,
		Logger:         l,
		EditorIDBuffer: cfg.Catalog.EditorIDBuffer,
	}
}
