package library

import (
	"strings"

	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// upnpTagNames maps a host tag type to the DIDL search field a
// MediaServer accepts in a SearchCriteria string. Types absent from
// this table are skipped silently by the compiler.
var upnpTagNames = map[dbapi.TagType]string{
	dbapi.TagTitle:    "dc:title",
	dbapi.TagArtist:   "upnp:artist",
	dbapi.TagAlbum:    "upnp:album",
	dbapi.TagGenre:    "upnp:genre",
	dbapi.TagComposer: "upnp:author",
	dbapi.TagDate:     "dc:date",
}

// compileSearch translates a filter into a SearchCriteria string and
// issues it, or reports an empty result without issuing a Search when
// the filter is absent or the server advertises no capabilities.
func compileSearch(server upnpav.ContentDirectoryService, rootObjectID string, filter *dbapi.SongFilter) (upnpav.DirContent, error) {
	if filter == nil {
		return upnpav.DirContent{}, nil
	}
	caps, err := server.SearchCapabilities()
	if err != nil {
		return upnpav.DirContent{}, err
	}
	if len(caps) == 0 {
		return upnpav.DirContent{}, nil
	}

	var clauses []string
	for _, item := range filter.Items {
		tf, ok := item.(*dbapi.TagSongFilter)
		if !ok {
			continue
		}
		clause, ok := compileTagClause(tf, caps)
		if !ok {
			continue
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return upnpav.DirContent{}, nil
	}

	criteria := strings.Join(clauses, " and ")
	return server.Search(rootObjectID, criteria)
}

func compileTagClause(f *dbapi.TagSongFilter, caps []string) (string, bool) {
	op := " = "
	if f.FoldCase {
		op = " contains "
	}

	if f.TagType == dbapi.TagAny {
		var parts []string
		for _, cap := range caps {
			parts = append(parts, cap+op+quoteCriteria(f.Value))
		}
		if len(parts) == 0 {
			return "", false
		}
		return "(" + strings.Join(parts, " or ") + ")", true
	}

	tagType := f.TagType
	if tagType == dbapi.TagAlbumArtist {
		tagType = dbapi.TagArtist
	}
	name, ok := upnpTagNames[tagType]
	if !ok {
		return "", false
	}
	return name + op + quoteCriteria(f.Value), true
}

// quoteCriteria wraps v in double quotes, backslash-escaping every
// embedded '"' and '\'. No other escaping is applied.
func quoteCriteria(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
