package cmd

import (
	"context"
	"fmt"

	"content-catalog/core/database"
	"content-catalog/feature/blacklist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// blacklistCmd is the parent command for blacklist maintenance.
var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage origin files hidden from catalog listings",
	Long: `Adds, removes and lists blacklisted origin files in the configured database.
A running server picks changes up on its next start; use the HTTP API to
change the blacklist of a live server.`,
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add <plugin>...",
	Short: "Blacklist origin files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlacklist(cmd.Context(), func(ctx context.Context, store *blacklist.Store, l *zap.Logger) error {
			for _, name := range args {
				if err := store.Add(ctx, name); err != nil {
					return err
				}
				l.Info("Origin blacklisted", zap.String("plugin", name))
			}
			return nil
		})
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:   "remove <plugin>...",
	Short: "Remove origin files from the blacklist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlacklist(cmd.Context(), func(ctx context.Context, store *blacklist.Store, l *zap.Logger) error {
			for _, name := range args {
				removed, err := store.Remove(ctx, name)
				if err != nil {
					return err
				}
				if !removed {
					l.Warn("Origin was not blacklisted", zap.String("plugin", name))
					continue
				}
				l.Info("Origin removed from blacklist", zap.String("plugin", name))
			}
			return nil
		})
	},
}

var blacklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blacklisted origin files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlacklist(cmd.Context(), func(ctx context.Context, store *blacklist.Store, l *zap.Logger) error {
			names := store.List()
			for _, name := range names {
				fmt.Println(name)
			}
			fmt.Printf("\nBlacklisted: %d\n", len(names))
			return nil
		})
	},
}

func init() {
	blacklistCmd.AddCommand(blacklistAddCmd, blacklistRemoveCmd, blacklistListCmd)
	RootCmd.AddCommand(blacklistCmd)
}

// withBlacklist opens the persistent blacklist and runs fn on it. Unlike the
// server, the commands need the database.
func withBlacklist(ctx context.Context, fn func(context.Context, *blacklist.Store, *zap.Logger) error) error {
	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}

	store := blacklist.NewStore(db, logg)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate blacklist: %w", err)
	}
	if missing, err := store.Verify(); err != nil {
		return err
	} else if len(missing) > 0 {
		return fmt.Errorf("blacklist table is missing columns: %v", missing)
	}
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}
	return fn(ctx, store, logg)
}
