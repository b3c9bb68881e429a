package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/catalog"
)

// defaultCatalogPath is where X-Plane keeps the dataref inventory,
// relative to the installation root.
const defaultCatalogPath = "Resources/plugins/DataRefs.txt"

func newDrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drefs",
		Short: "Browse the simulator's dataref catalog",
	}

	cmd.AddCommand(newDrefsSearchCmd())
	cmd.AddCommand(newDrefsInfoCmd())

	return cmd
}

func newDrefsSearchCmd() *cobra.Command {
	var (
		catalogPath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "search <substring>",
		Short: "Search DataRefs.txt by name substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			hits := cat.Search(args[0])
			if len(hits) == 0 {
				fmt.Printf("no datarefs match %q (%d in catalog)\n", args[0], cat.Len())
				return nil
			}

			total := len(hits)
			if limit > 0 && len(hits) > limit {
				hits = hits[:limit]
			}
			for _, e := range hits {
				fmt.Println(formatEntry(e))
			}
			if total > len(hits) {
				fmt.Printf("... and %d more (raise --limit to see them)\n", total-len(hits))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to DataRefs.txt (default "+defaultCatalogPath+")")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum results to print (0 for all)")

	return cmd
}

func newDrefsInfoCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show one catalog entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			e, ok := cat.Find(args[0])
			if !ok {
				return fmt.Errorf("dataref %q not in catalog", args[0])
			}

			fmt.Printf("Name:     %s\n", e.Name)
			fmt.Printf("Type:     %s\n", e.Type)
			fmt.Printf("Writable: %v\n", e.Writable)
			if e.Units != "" {
				fmt.Printf("Units:    %s\n", e.Units)
			}
			if e.Description != "" {
				fmt.Printf("About:    %s\n", e.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to DataRefs.txt (default "+defaultCatalogPath+")")

	return cmd
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = filepath.FromSlash(defaultCatalogPath)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog (run from the X-Plane root or pass --catalog): %w", err)
	}
	return cat, nil
}

func formatEntry(e catalog.Entry) string {
	w := "r"
	if e.Writable {
		w = "rw"
	}
	line := fmt.Sprintf("%-60s  %-10s %-2s", e.Name, e.Type, w)
	if e.Units != "" {
		line += "  " + e.Units
	}
	return line
}
