// Package upnpav is the external UPnP client library surface this
// adapter is built against: SSDP discovery, SOAP ContentDirectory
// dispatch, and DIDL-Lite decoding. spec.md treats this layer as an
// out-of-scope collaborator; this package is the concrete
// implementation the rest of the module compiles and runs against.
package upnpav

import "github.com/nsavage/upnpdb/pkg/dbapi"

// ObjectType is the DIDL-Lite class of a directory object.
type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectContainer
	ObjectItem
)

// ItemClass narrows ObjectItem into what the item actually holds.
type ItemClass int

const (
	ItemUnknown ItemClass = iota
	ItemMusic
	ItemPlaylist
)

// DirObject is one node of a MediaServer's ContentDirectory tree.
type DirObject struct {
	ID       string
	ParentID string
	Name     string
	Type     ObjectType
	Class    ItemClass
	URL      string
	Tag      dbapi.Tag
}

// DirContent is an ordered set of DirObject as returned by one
// readDir/getMetadata/search call.
type DirContent struct {
	Objects []DirObject
}

// FindByName returns the first child named name, byte-exact, or false
// if none matches. Name collisions are resolved by first match in
// Objects order; for content decoded by parseDIDL that order lists all
// containers before all items, so it is not the server's own order
// when the server interleaves them.
func (c DirContent) FindByName(name string) (DirObject, bool) {
	for _, obj := range c.Objects {
		if obj.Name == name {
			return obj, true
		}
	}
	return DirObject{}, false
}

// ContentDirectoryService is a handle to one MediaServer's
// ContentDirectory:1 service.
type ContentDirectoryService interface {
	FriendlyName() string
	ReadDir(objectID string) (DirContent, error)
	GetMetadata(objectID string) (DirContent, error)
	Search(objectID, criteria string) (DirContent, error)
	SearchCapabilities() ([]string, error)
}

// Discovery is the SSDP device directory: it exposes the set of
// currently-known MediaServers. Callers must not assume the slice
// returned by Directories is stable across calls.
type Discovery interface {
	Start() error
	Stop()
	Directories() []ContentDirectoryService
}
