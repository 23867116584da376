package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nsavage/upnpdb/pkg/dbapi"
)

func lsCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory (empty path lists all servers)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			_, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			var uri string
			if len(args) == 1 {
				uri = args[0]
			}

			var result ListResult
			err := app.db.Visit(dbapi.Selection{URI: uri, Recursive: recursive},
				func(d dbapi.LightDirectory) error {
					result.Directories = append(result.Directories, d)
					return nil
				},
				func(s dbapi.LightSong) error {
					result.Songs = append(result.Songs, s)
					return nil
				},
				nil,
			)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "with an empty path, also list each server's top level")
	return cmd
}
