package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishant3366/minealert/internal/imagery"
	"github.com/ishant3366/minealert/internal/store"
)

func newAnnotateCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "annotate <image>",
		Short: "Record demo landmine detections for a survey image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			detections, err := imagery.NewAnnotator().Annotate(args[0], lat, lon, time.Now())
			if err != nil {
				return err
			}
			for i := range detections {
				if err := st.SaveDetection(&detections[i]); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recorded %d detections from %s\n", len(detections), args[0])
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 34.0522, "latitude the image was captured at")
	cmd.Flags().Float64Var(&lon, "lon", -118.2437, "longitude the image was captured at")
	return cmd
}
