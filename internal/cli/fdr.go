package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/fdr"
)

func newFdrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fdr",
		Short: "Work with flight data recordings",
	}

	cmd.AddCommand(newFdrListCmd())
	cmd.AddCommand(newFdrExportCmd())

	return cmd
}

func newFdrListCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings in a recorder database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := fdr.Open(dbPath, log)
			if err != nil {
				return err
			}
			defer db.Close()

			recs, err := fdr.Recordings(db)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("no recordings")
				return nil
			}

			for _, r := range recs {
				stopped := "running"
				if !r.StoppedAt.IsZero() {
					stopped = r.StoppedAt.Format(time.DateTime)
				}
				fmt.Printf("%s  %s .. %s  %6d samples  %s\n",
					r.ID,
					r.StartedAt.Format(time.DateTime),
					stopped,
					r.Samples,
					strings.Join(r.Channels, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "fdr.db", "path to the recorder database")

	return cmd
}

func newFdrExportCmd() *cobra.Command {
	var (
		dbPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export <recording-id>",
		Short: "Export one recording as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := fdr.Open(dbPath, log)
			if err != nil {
				return err
			}
			defer db.Close()

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := fdr.ExportCSV(db, args[0], out); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "fdr.db", "path to the recorder database")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	return cmd
}
