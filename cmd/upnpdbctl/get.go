package main

import (
	"context"

	"github.com/spf13/cobra"
)

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uri>",
		Short: "Resolve one song by HostPath",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			_, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			song, err := app.db.GetSong(args[0])
			if err != nil {
				return err
			}
			defer app.db.ReturnSong(song)

			return app.printer.Print(SongResult{Song: *song})
		},
	}
}
