package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"content-catalog/core/taskqueue"
	"content-catalog/feature/blacklist"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogCategory   string
	catalogOrder      string
	catalogCapability string
	catalogContains   string
	catalogJSON       bool
)

// catalogCmd builds the catalog once and prints the matching origin files.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build the catalog and list origin files",
	Long: `Indexes the configured load order, builds the catalog and prints the origin
files of a category, optionally restricted to one capability.

Examples:
  # Every origin file, alphabetically
  catalog

  # Item plugins that add weapons, by load order
  catalog --category item --capability weapon --order compileindex_asc

  # Detailed JSON output
  catalog --category cell --json`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "all", "Category: all, item, npc, static or cell")
	catalogCmd.Flags().StringVar(&catalogOrder, "order", models.SortAlphabetical.String(), "Sort order: none, alphabetical, compileindex_asc or compileindex_desc")
	catalogCmd.Flags().StringVar(&catalogCapability, "capability", "", "Only list origins with this capability (e.g. weapon, npc)")
	catalogCmd.Flags().StringVar(&catalogContains, "contains", "", "Only list origins whose name contains this text")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print origin details as JSON")
	RootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	category, ok := models.ParseCategory(catalogCategory)
	if !ok {
		return fmt.Errorf("unknown category %q", catalogCategory)
	}
	order, ok := models.ParseSortOrder(catalogOrder)
	if !ok {
		return fmt.Errorf("unknown sort order %q", catalogOrder)
	}
	capability, ok := models.ParseCapability(catalogCapability)
	if !ok {
		return fmt.Errorf("unknown capability %q", catalogCapability)
	}

	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	ctx := cmd.Context()
	startTime := time.Now()

	host, err := loadHost(ctx, cfg, logg)
	if err != nil {
		return err
	}

	queue := taskqueue.New(queueSize, logg)
	defer queue.Close()

	svc := catalog.NewService(catalogDeps(cfg, host, blacklist.NewStore(nil, logg), queue, logg))
	defer svc.Close()
	counts := svc.Rebuild(ctx)
	queue.Drain()

	names := svc.FilteredNames(category, order, capability, catalogContains)

	if catalogJSON {
		infos := make([]catalog.OriginInfo, 0, len(names))
		for _, name := range names {
			if info, ok := svc.Origin(name); ok {
				infos = append(infos, info)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Printf("\n=== Catalog: %s ===\n", category)
	for _, name := range names {
		info, _ := svc.Origin(name)
		fmt.Printf("%-48s %s  %s\n", name, info.Prefix, strings.Join(info.Capabilities, ","))
	}
	fmt.Printf("\nOrigins: %d\n", len(names))
	fmt.Printf("Items: %d  NPCs: %d  Statics: %d  Cells: %d\n",
		counts[models.CategoryItem], counts[models.CategoryNPC],
		counts[models.CategoryStatic], counts[models.CategoryCell])
	fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

	logg.Debug("Catalog listed", zap.Int("origins", len(names)), zap.Duration("execution_time", time.Since(startTime)))
	return nil
}
