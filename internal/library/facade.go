package library

import (
	"time"

	"go.uber.org/zap"

	"github.com/nsavage/upnpdb/internal/notify"
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// Config configures a Facade's discovery client.
type Config struct {
	// Interface is the local network interface name bound by the UPnP
	// client. Empty means the library default (all interfaces).
	Interface string

	DiscoveryInterval time.Duration
	CacheBytes        int
	CacheTTL          time.Duration

	// Notifier is optional: when set, discovery changes (a server
	// appearing or disappearing) are published to it.
	Notifier *notify.Notifier

	Logger *zap.Logger
}

// Facade implements dbapi.Database against a set of discovered UPnP
// MediaServers. It owns exactly one discovery instance between Open
// and Close.
type Facade struct {
	cfg Config
	log *zap.Logger

	discovery *upnpav.PupnpDiscovery
	registry  *Registry
	engine    *Engine
}

// NewFacade constructs a Facade that has not yet been Opened.
func NewFacade(cfg Config) *Facade {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Facade{cfg: cfg, log: log}
}

// Open initializes the UPnP client and starts discovery. On failure
// the client handle is released and the error re-raised; no partial
// state remains.
func (f *Facade) Open() error {
	discovery, err := upnpav.NewDiscovery(upnpav.DiscoveryConfig{
		ListenAddr:     f.cfg.Interface,
		SearchInterval: f.cfg.DiscoveryInterval,
		CacheBytes:     f.cfg.CacheBytes,
		CacheTTL:       f.cfg.CacheTTL,
		Logger:         f.log,
		OnServerChange: func(id, friendlyName string, appeared bool) {
			kind := notify.KindDisappeared
			if appeared {
				kind = notify.KindAppeared
			}
			f.cfg.Notifier.Publish(notify.Event{Server: friendlyName, Kind: kind, Timestamp: time.Now()})
		},
	})
	if err != nil {
		return err
	}
	if err := discovery.Start(); err != nil {
		discovery.Stop()
		return err
	}
	f.discovery = discovery
	f.registry = NewRegistry(discovery)
	f.engine = NewEngine(f.registry)
	return nil
}

// Close stops discovery and releases the client. Safe to call after a
// failed Open, and safe to call twice.
func (f *Facade) Close() {
	if f.discovery == nil {
		return
	}
	f.discovery.Stop()
	f.discovery = nil
	f.registry = nil
	f.engine = nil
}

// GetSong resolves uri to a heap-owned song record.
func (f *Facade) GetSong(uri string) (*dbapi.LightSong, error) {
	serverName, tail := dbapi.SplitPath(uri)
	if serverName == "" || tail == "" {
		return nil, dbapi.NewNotFound("song uri must be <server>/<path>")
	}
	server, err := f.registry.GetServer(serverName)
	if err != nil {
		return nil, err
	}

	var obj upnpav.DirObject
	if id, ok := isIDPath(tail); ok {
		obj, err = getMetadata(server, id)
	} else {
		obj, err = namei(server, tail)
	}
	if err != nil {
		return nil, err
	}
	if obj.Type != upnpav.ObjectItem || obj.Class != upnpav.ItemMusic {
		return nil, dbapi.NewNotFound("uri does not resolve to a music item")
	}
	return newHeapSong(uri, obj), nil
}

// ReturnSong destroys the heap-owned record. The record must not be
// read again afterwards.
func (f *Facade) ReturnSong(song *dbapi.LightSong) {
	if song == nil {
		return
	}
	song.URI = ""
	song.RealURI = ""
	song.Tag = nil
}

// Visit copies the selection, clears its uri and filter for the
// helper, dispatches via the Engine, then commits the helper.
func (f *Facade) Visit(selection dbapi.Selection, vd dbapi.VisitDirectory, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	helperSelection := selection
	helperSelection.URI = ""
	helperSelection.Filter = nil
	helper := dbapi.NewVisitorHelper(helperSelection, vs)

	if err := f.engine.Visit(selection, vd, helper.VisitSong, vp); err != nil {
		return err
	}
	helper.Commit()
	return nil
}

// CollectUniqueTags delegates to the host's generic helper, which
// repeatedly drives Visit and deduplicates.
func (f *Facade) CollectUniqueTags(selection dbapi.Selection, tagTypes []dbapi.TagType) (*dbapi.RecursiveMap, error) {
	return dbapi.CollectUniqueTags(f, selection, tagTypes)
}

// GetStats returns a zeroed stats record: UPnP has no authoritative
// counters.
func (f *Facade) GetStats(_ dbapi.Selection) (dbapi.DatabaseStats, error) {
	return dbapi.DatabaseStats{}, nil
}

// GetUpdateStamp is invariant: UPnP has no global change counter.
func (f *Facade) GetUpdateStamp() time.Time {
	return dbapi.EpochMin
}
