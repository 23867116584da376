package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nsavage/upnpdb/pkg/dbapi"
)

func searchCommand() *cobra.Command {
	var (
		artist string
		title  string
		album  string
		genre  string
		fold   bool
	)

	cmd := &cobra.Command{
		Use:   "search <server>",
		Short: "Search one server's ContentDirectory by tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			_, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			filter := &dbapi.SongFilter{}
			addTagFilter(filter, dbapi.TagArtist, artist, fold)
			addTagFilter(filter, dbapi.TagTitle, title, fold)
			addTagFilter(filter, dbapi.TagAlbum, album, fold)
			addTagFilter(filter, dbapi.TagGenre, genre, fold)
			if len(filter.Items) == 0 {
				return cmd.Help()
			}

			var result ListResult
			err := app.db.Visit(dbapi.Selection{URI: args[0], Recursive: true, Filter: filter},
				nil,
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

	cmd.Flags().StringVar(&artist, "artist", "", "match artist tag")
	cmd.Flags().StringVar(&title, "title", "", "match title tag")
	cmd.Flags().StringVar(&album, "album", "", "match album tag")
	cmd.Flags().StringVar(&genre, "genre", "", "match genre tag")
	cmd.Flags().BoolVar(&fold, "fold", true, "case-insensitive substring match instead of exact")
	return cmd
}

func addTagFilter(filter *dbapi.SongFilter, tagType dbapi.TagType, value string, fold bool) {
	if value == "" {
		return
	}
	filter.Items = append(filter.Items, &dbapi.TagSongFilter{TagType: tagType, Value: value, FoldCase: fold})
}
