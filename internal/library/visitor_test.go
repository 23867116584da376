package library

import (
	"testing"

	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

func newEngine(servers ...upnpav.ContentDirectoryService) *Engine {
	registry := NewRegistry(&fakeDiscovery{servers: servers})
	return NewEngine(registry)
}

// S1: listing the multi-server root emits one directory per server.
func TestVisitListRootListsServers(t *testing.T) {
	ms1 := newFakeServer("MS1")
	ms2 := newFakeServer("MS2")
	engine := newEngine(ms1, ms2)

	var seen []string
	err := engine.Visit(dbapi.Selection{}, func(d dbapi.LightDirectory) error {
		seen = append(seen, d.URI)
		return nil
	}, nil, nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 directories, got %v", seen)
	}
}

// S2: listing a server's root suppresses non-music items and reports
// containers as directories.
func TestVisitListContainerSuppressesNonMusic(t *testing.T) {
	ms := newFakeServer("MS")
	ms.addChild(rootSentinel, container("1", rootSentinel, "Music"))
	ms.addChild(rootSentinel, upnpav.DirObject{ID: "2", ParentID: rootSentinel, Name: "photo.jpg", Type: upnpav.ObjectItem, Class: upnpav.ItemUnknown})
	engine := newEngine(ms)

	var dirs []string
	var songs []string
	err := engine.Visit(dbapi.Selection{URI: "MS"},
		func(d dbapi.LightDirectory) error { dirs = append(dirs, d.URI); return nil },
		func(s dbapi.LightSong) error { songs = append(songs, s.URI); return nil },
		nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != "MS/Music" {
		t.Fatalf("expected [MS/Music], got %v", dirs)
	}
	if len(songs) != 0 {
		t.Fatalf("expected no songs, got %v", songs)
	}
}

// S3: resolving a song by name path returns its pretty uri.
func TestGetSongByName(t *testing.T) {
	ms := newFakeServer("MS")
	ms.addChild(rootSentinel, container("1", rootSentinel, "Music"))
	ms.addChild("1", musicItem("7", "1", "Song.flac", "http://host/7.flac"))

	f := &Facade{}
	f.registry = NewRegistry(&fakeDiscovery{servers: []upnpav.ContentDirectoryService{ms}})
	f.engine = NewEngine(f.registry)

	song, err := f.GetSong("MS/Music/Song.flac")
	if err != nil {
		t.Fatalf("get song: %v", err)
	}
	if song.URI != "MS/Music/Song.flac" || song.RealURI != "http://host/7.flac" {
		t.Fatalf("unexpected song: %+v", song)
	}
}

// S4: resolving the same song by id-path returns the synthetic uri.
func TestGetSongByIDPath(t *testing.T) {
	ms := newFakeServer("MS")
	ms.addChild(rootSentinel, container("1", rootSentinel, "Music"))
	ms.addChild("1", musicItem("7", "1", "Song.flac", "http://host/7.flac"))

	f := &Facade{}
	f.registry = NewRegistry(&fakeDiscovery{servers: []upnpav.ContentDirectoryService{ms}})
	f.engine = NewEngine(f.registry)

	song, err := f.GetSong("MS/0/7")
	if err != nil {
		t.Fatalf("get song: %v", err)
	}
	if song.URI != "MS/0/7" || song.RealURI != "http://host/7.flac" {
		t.Fatalf("unexpected song: %+v", song)
	}
}

// S5: a fold-case artist filter compiles to a "contains" clause and
// results are addressed by synthetic id-path.
func TestVisitSearchCompilesCriteriaAndUsesIDPath(t *testing.T) {
	ms := newFakeServer("MS")
	ms.caps = []string{"dc:title", "upnp:artist"}
	ms.searchResult = upnpav.DirContent{Objects: []upnpav.DirObject{
		musicItem("9", rootSentinel, "Highway to Hell", "http://host/9.flac"),
	}}
	engine := newEngine(ms)

	filter := &dbapi.SongFilter{Items: []dbapi.FilterItem{
		&dbapi.TagSongFilter{TagType: dbapi.TagArtist, Value: `AC\DC`, FoldCase: true},
	}}

	var songs []dbapi.LightSong
	err := engine.Visit(dbapi.Selection{URI: "MS", Recursive: true, Filter: filter}, nil,
		func(s dbapi.LightSong) error { songs = append(songs, s); return nil }, nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	const want = `upnp:artist contains "AC\\DC"`
	if ms.searchCriteria != want {
		t.Fatalf("criteria = %q, want %q", ms.searchCriteria, want)
	}
	if len(songs) != 1 || songs[0].URI != "MS/0/9" {
		t.Fatalf("unexpected songs: %+v", songs)
	}
}

// S3 property: zero search capabilities means no search call and an
// empty result.
func TestVisitSearchGatedByCapabilities(t *testing.T) {
	ms := newFakeServer("MS")
	ms.caps = nil
	engine := newEngine(ms)

	filter := &dbapi.SongFilter{Items: []dbapi.FilterItem{
		&dbapi.TagSongFilter{TagType: dbapi.TagArtist, Value: "x"},
	}}

	var count int
	err := engine.Visit(dbapi.Selection{URI: "MS", Recursive: true, Filter: filter}, nil,
		func(s dbapi.LightSong) error { count++; return nil }, nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero songs, got %d", count)
	}
	if ms.searchCriteria != "" {
		t.Fatalf("expected no search call, criteria = %q", ms.searchCriteria)
	}
}

// S6: an unknown server name fails not-found.
func TestGetSongUnknownServer(t *testing.T) {
	f := &Facade{}
	f.registry = NewRegistry(&fakeDiscovery{})
	f.engine = NewEngine(f.registry)

	_, err := f.GetSong("NoSuch/whatever")
	if !dbapi.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

// Property 7: a tail beginning with "0/" never issues readDir.
func TestVisitIDPathNeverReadsDir(t *testing.T) {
	ms := newFakeServer("MS")
	ms.addChild(rootSentinel, musicItem("7", rootSentinel, "Song.flac", "http://host/7.flac"))

	var readDirCalls int
	wrapped := &countingReadDirServer{fakeServer: ms, calls: &readDirCalls}

	var songs []string
	err := NewEngine(NewRegistry(&fakeDiscovery{servers: []upnpav.ContentDirectoryService{wrapped}})).
		Visit(dbapi.Selection{URI: "MS/0/7"}, nil, func(s dbapi.LightSong) error { songs = append(songs, s.URI); return nil }, nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if readDirCalls != 0 {
		t.Fatalf("expected no readDir calls, got %d", readDirCalls)
	}
	if len(songs) != 1 || songs[0] != "MS/0/7" {
		t.Fatalf("unexpected songs: %v", songs)
	}
}

type countingReadDirServer struct {
	*fakeServer
	calls *int
}

func (c *countingReadDirServer) ReadDir(objectID string) (upnpav.DirContent, error) {
	*c.calls++
	return c.fakeServer.ReadDir(objectID)
}

// The "0" sentinel alone never resolves to a song.
func TestVisitRootSentinelAloneEmitsNothing(t *testing.T) {
	ms := newFakeServer("MS")
	engine := newEngine(ms)

	var count int
	err := engine.Visit(dbapi.Selection{URI: "MS/0"}, nil, func(s dbapi.LightSong) error { count++; return nil }, nil)
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero visits, got %d", count)
	}
}
