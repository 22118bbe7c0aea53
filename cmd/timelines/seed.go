package main

import (
	"github.com/spf13/cobra"
	"github.com/timeline-dev/timelines/db"
	"github.com/timeline-dev/timelines/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Recreate the fixture users and their sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, conn, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(conn)

		_, err = seed.Run(cmd.Context(), conn, log)
		return err
	},
}
