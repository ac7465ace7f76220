package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/internal/report"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extraction runs (needs history.dsn)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.History.DSN == "" {
				return errors.New("run history is disabled: set history.dsn or RESUME_HISTORY_DSN")
			}
			db, err := repository.Open(cmd.Context(), repository.Config{
				DSN:         a.cfg.History.DSN,
				DialTimeout: a.cfg.History.DialTimeout,
			}, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := repository.NewRunRepository(db, a.logger).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			report.History(a.stdout, runs, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}
