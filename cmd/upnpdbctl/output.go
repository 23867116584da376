package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// Printer renders one command's result, human-readable or as JSON.
type Printer interface {
	Print(v any) error
}

// HumanPrinter renders results as pterm tables and styled text.
type HumanPrinter struct{}

// ListResult is the payload of the ls command.
type ListResult struct {
	Directories []dbapi.LightDirectory
	Songs       []dbapi.LightSong
}

// SongResult is the payload of the get command.
type SongResult struct {
	Song dbapi.LightSong
}

func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case ListResult:
		return printList(data)
	case SongResult:
		return printSong(data.Song)
	default:
		pterm.Info.Println("ok")
		return nil
	}
}

func printList(result ListResult) error {
	rows := [][]string{{"TYPE", "URI"}}
	for _, d := range result.Directories {
		rows = append(rows, []string{"dir", d.URI})
	}
	for _, s := range result.Songs {
		rows = append(rows, []string{"song", s.URI})
	}
	if len(rows) == 1 {
		pterm.Warning.Println("no entries")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printSong(song dbapi.LightSong) error {
	pterm.DefaultBox.WithTitle(song.URI).Println(fmt.Sprintf("stream: %s", song.RealURI))
	rows := [][]string{{"TAG", "VALUE"}}
	for tagType, value := range song.Tag {
		rows = append(rows, []string{tagType.String(), value})
	}
	if len(rows) == 1 {
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// JSONPrinter renders results as plain JSON to stdout.
type JSONPrinter struct{}

func (JSONPrinter) Print(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
