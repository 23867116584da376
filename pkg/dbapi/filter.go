package dbapi

import "strings"

// FilterItem is the open-ended vocabulary of a SongFilter. Only
// TagSongFilter is translated by the search compiler; other kinds pass
// through untranslated and are re-applied client-side via Match.
type FilterItem interface {
	// Match reports whether song satisfies this filter item.
	Match(song LightSong) bool
}

// TagSongFilter matches a song whose tag value for TagType equals (or,
// with FoldCase, contains case-insensitively) Value.
type TagSongFilter struct {
	TagType  TagType
	Value    string
	FoldCase bool
}

// Match implements FilterItem.
func (f TagSongFilter) Match(song LightSong) bool {
	if f.TagType == TagAny {
		for _, v := range song.Tag {
			if tagValueMatches(v, f.Value, f.FoldCase) {
				return true
			}
		}
		return false
	}
	return tagValueMatches(song.Tag.Get(f.TagType), f.Value, f.FoldCase)
}

func tagValueMatches(have, want string, foldCase bool) bool {
	if !foldCase {
		return have == want
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

// SongFilter is a sequence of filter items, all of which must match
// (logical AND) for a song to be selected.
type SongFilter struct {
	Items []FilterItem
}

// Match reports whether song satisfies every item in the filter. A nil
// or empty filter matches everything.
func (f *SongFilter) Match(song LightSong) bool {
	if f == nil {
		return true
	}
	for _, item := range f.Items {
		if !item.Match(song) {
			return false
		}
	}
	return true
}

// Match reports whether song satisfies selection's filter, treating a
// nil filter as "match everything."
func (s Selection) Match(song LightSong) bool {
	return s.Filter.Match(song)
}
