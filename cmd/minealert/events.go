package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishant3366/minealert/internal/store"
	"github.com/ishant3366/minealert/internal/utils"
)

func newEventsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent mission events",
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

			events, err := st.ListEvents(limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no events recorded")
				return nil
			}

			now := time.Now().UTC()
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %-10s %s\n",
					utils.FormatRelative(e.Time, now), e.Severity, e.Type, e.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events")
	return cmd
}
