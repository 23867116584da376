package library

import (
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// Engine orchestrates one visit request across the server registry,
// dispatching each resolved server to VisitServer.
type Engine struct {
	registry *Registry
}

// NewEngine builds an Engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Visit dispatches selection across one or all servers.
func (e *Engine) Visit(selection dbapi.Selection, vd dbapi.VisitDirectory, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	if selection.URI == "" {
		return e.visitAllServers(selection, vd, vs, vp)
	}

	serverName, tail := dbapi.SplitPath(selection.URI)
	server, err := e.registry.GetServer(serverName)
	if err != nil {
		return err
	}
	return e.VisitServer(server, tail, selection, vd, vs, vp)
}

func (e *Engine) visitAllServers(selection dbapi.Selection, vd dbapi.VisitDirectory, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	for _, server := range e.registry.GetDirectories() {
		if vd != nil {
			if err := vd(dbapi.LightDirectory{URI: server.FriendlyName(), Mtime: dbapi.EpochMin}); err != nil {
				return err
			}
		}
		if selection.Recursive {
			if err := e.VisitServer(server, "", selection, vd, vs, vp); err != nil {
				return err
			}
		}
	}
	return nil
}

// VisitServer dispatches a single server's tail per the classification
// order: ID-path sentinel, ID-path, then name-path.
func (e *Engine) VisitServer(server upnpav.ContentDirectoryService, tail string, selection dbapi.Selection, vd dbapi.VisitDirectory, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	if tail == rootSentinel {
		return nil
	}

	if id, ok := isIDPath(tail); ok {
		obj, err := getMetadata(server, id)
		if err != nil {
			return err
		}
		if obj.Type != upnpav.ObjectItem || obj.Class != upnpav.ItemMusic {
			return dbapi.NewNotFound("id-path does not resolve to a music item")
		}
		song := toLightSong(syntheticPath(server.FriendlyName(), id), obj)
		if !selection.Match(song) {
			return nil
		}
		return callVisitSong(vs, song)
	}

	target, err := namei(server, tail)
	if err != nil {
		return err
	}

	if selection.Recursive && selection.Filter != nil {
		return e.visitSearch(server, target.ID, selection, vs)
	}

	requestURI := selection.URI
	if requestURI == "" {
		requestURI = server.FriendlyName()
	}

	switch target.Type {
	case upnpav.ObjectItem:
		return dispatchItem(target, requestURI, selection, vs, vp)
	case upnpav.ObjectContainer:
		return e.visitListing(server, target.ID, requestURI, selection, vd, vs, vp)
	default:
		return nil
	}
}

func (e *Engine) visitSearch(server upnpav.ContentDirectoryService, containerID string, selection dbapi.Selection, vs dbapi.VisitSong) error {
	content, err := compileSearch(server, containerID, selection.Filter)
	if err != nil {
		return err
	}
	for _, obj := range content.Objects {
		if obj.Type != upnpav.ObjectItem || obj.Class != upnpav.ItemMusic {
			continue
		}
		song := toLightSong(syntheticPath(server.FriendlyName(), obj.ID), obj)
		// Tag items went to the server as criteria; other kinds are
		// checked here.
		matched := true
		for _, item := range selection.Filter.Items {
			if _, translated := item.(*dbapi.TagSongFilter); translated {
				continue
			}
			if !item.Match(song) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if err := callVisitSong(vs, song); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) visitListing(server upnpav.ContentDirectoryService, containerID, baseURI string, selection dbapi.Selection, vd dbapi.VisitDirectory, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	content, err := readDir(server, containerID)
	if err != nil {
		return err
	}
	for _, child := range content.Objects {
		childURI := dbapi.JoinPath(baseURI, child.Name)
		if err := dispatchItem(child, childURI, selection, vs, vp); err != nil {
			return err
		}
		if child.Type == upnpav.ObjectContainer && vd != nil {
			if err := vd(dbapi.LightDirectory{URI: childURI, Mtime: dbapi.EpochMin}); err != nil {
				return err
			}
		}
	}
	return nil
}

// dispatchItem routes a single DirObject that may be a container,
// music item, playlist item, or unknown item. Containers are the
// caller's responsibility (visitListing already emits them); this
// helper only handles the item classes shared between single-target
// dispatch and per-child listing dispatch.
func dispatchItem(obj upnpav.DirObject, uri string, selection dbapi.Selection, vs dbapi.VisitSong, vp dbapi.VisitPlaylist) error {
	if obj.Type != upnpav.ObjectItem {
		return nil
	}
	switch obj.Class {
	case upnpav.ItemMusic:
		song := toLightSong(uri, obj)
		if !selection.Match(song) {
			return nil
		}
		return callVisitSong(vs, song)
	case upnpav.ItemPlaylist:
		_ = vp // playlists are never surfaced in this release
		return nil
	default:
		return nil
	}
}

func callVisitSong(vs dbapi.VisitSong, song dbapi.LightSong) error {
	if vs == nil {
		return nil
	}
	return vs(song)
}
