package cmd

import (
	"fmt"

	"content-catalog/core/utils"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"github.com/spf13/cobra"
)

// cellsCmd scans one origin file for cells.
var cellsCmd = &cobra.Command{
	Use:   "cells <plugin>",
	Short: "Scan one origin file for cell records",
	Long: `Loads the configured load order, then streams the named plugin and prints
every cell it defines with its load-order form key and editor ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		ctx := cmd.Context()
		host, err := loadHost(ctx, cfg, logg)
		if err != nil {
			return err
		}
		origin, ok := host.OriginByName(args[0])
		if !ok {
			return fmt.Errorf("plugin %s is not in the load order", args[0])
		}

		cat := catalog.New(catalogDeps(cfg, host, nil, nil, logg))
		out := models.NewCellScanMap()
		cat.ScanForCells(ctx, origin, out)

		for _, e := range out.Entries() {
			fmt.Printf("%s  %s\n", utils.FormatFormID(e.Key.FormKey), e.Key.EditorID)
		}
		fmt.Printf("\nCells in %s: %d\n", origin.Name, out.Len())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cellsCmd)
}
