package dbapi

import "testing"

func TestTagSongFilterExactMatch(t *testing.T) {
	f := &TagSongFilter{TagType: TagArtist, Value: "Queen"}
	song := LightSong{Tag: Tag{TagArtist: "Queen"}}
	if !f.Match(song) {
		t.Fatalf("expected exact match")
	}
	song.Tag[TagArtist] = "queen"
	if f.Match(song) {
		t.Fatalf("expected exact match to be case-sensitive")
	}
}

func TestTagSongFilterFoldCaseContains(t *testing.T) {
	f := &TagSongFilter{TagType: TagAlbum, Value: "Wall", FoldCase: true}
	song := LightSong{Tag: Tag{TagAlbum: "The WALL"}}
	if !f.Match(song) {
		t.Fatalf("expected fold-case contains match")
	}
}

func TestTagSongFilterAnyTagMatchesAnyField(t *testing.T) {
	f := &TagSongFilter{TagType: TagAny, Value: "queen", FoldCase: true}
	song := LightSong{Tag: Tag{TagTitle: "Bohemian Rhapsody", TagArtist: "Queen"}}
	if !f.Match(song) {
		t.Fatalf("expected any-tag match")
	}
}

func TestSongFilterNilMatchesEverything(t *testing.T) {
	var f *SongFilter
	if !f.Match(LightSong{}) {
		t.Fatalf("nil filter must match everything")
	}
}

func TestSongFilterRequiresAllItems(t *testing.T) {
	f := &SongFilter{Items: []FilterItem{
		&TagSongFilter{TagType: TagArtist, Value: "Queen"},
		&TagSongFilter{TagType: TagGenre, Value: "Rock"},
	}}
	song := LightSong{Tag: Tag{TagArtist: "Queen", TagGenre: "Pop"}}
	if f.Match(song) {
		t.Fatalf("expected filter to fail on genre mismatch")
	}
	song.Tag[TagGenre] = "Rock"
	if !f.Match(song) {
		t.Fatalf("expected filter to pass once all items match")
	}
}

func TestSelectionMatchDelegatesToFilter(t *testing.T) {
	s := Selection{Filter: &SongFilter{Items: []FilterItem{
		&TagSongFilter{TagType: TagArtist, Value: "Queen"},
	}}}
	if s.Match(LightSong{Tag: Tag{TagArtist: "Muse"}}) {
		t.Fatalf("expected mismatch")
	}
}
