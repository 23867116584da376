// Package library implements the upnp database plugin: it turns a set
// of discovered UPnP MediaServers into a dbapi.Database a host media
// player can browse, resolve songs against, and search.
package library

import (
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// Registry wraps a discovery snapshot and resolves servers by their
// exact, byte-comparable friendly name.
type Registry struct {
	discovery upnpav.Discovery
}

// NewRegistry wraps an already-started Discovery.
func NewRegistry(discovery upnpav.Discovery) *Registry {
	return &Registry{discovery: discovery}
}

// GetServer returns the live server whose friendly name matches name
// exactly, case-sensitive, byte-exact. Fails not-found otherwise.
func (r *Registry) GetServer(name string) (upnpav.ContentDirectoryService, error) {
	for _, s := range r.discovery.Directories() {
		if s.FriendlyName() == name {
			return s, nil
		}
	}
	return nil, dbapi.NewNotFound("no such server: " + name)
}

// GetDirectories returns the current discovery snapshot. Callers must
// not assume the result is stable across calls.
func (r *Registry) GetDirectories() []upnpav.ContentDirectoryService {
	return r.discovery.Directories()
}
