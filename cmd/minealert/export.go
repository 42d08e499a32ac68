package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishant3366/minealert/internal/export"
	"github.com/ishant3366/minealert/internal/store"
)

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored detections to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unsupported format %q (want csv or json)", format)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			detections, err := st.ListDetections()
			if err != nil {
				return err
			}

			if out == "" {
				out = export.Filename(format, time.Now())
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			if format == "csv" {
				err = export.WriteCSV(f, detections)
			} else {
				err = export.WriteJSON(f, detections)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d detections to %s\n", len(detections), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: timestamped name)")
	return cmd
}
