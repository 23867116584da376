package library

import (
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// syntheticPath builds the "<friendlyName>/0/<objectId>" HostPath used
// whenever a song's tree position was obtained via search or ID-path
// resolution and a stable pretty path is unavailable.
func syntheticPath(friendlyName, objectID string) string {
	return dbapi.JoinPath(friendlyName, dbapi.JoinPath(rootSentinel, objectID))
}

// toLightSong converts a DirObject known to be a music item into the
// host-visible song shape, addressed at the given HostPath.
func toLightSong(uri string, obj upnpav.DirObject) dbapi.LightSong {
	return dbapi.LightSong{
		URI:     uri,
		RealURI: obj.URL,
		Tag:     obj.Tag,
	}
}

// newHeapSong allocates the heap-owned record returned by GetSong. Its
// fields are copied out of any short-lived DirObject/DirContent so it
// remains valid independent of subsequent UPnP calls until ReturnSong.
func newHeapSong(uri string, obj upnpav.DirObject) *dbapi.LightSong {
	song := toLightSong(uri, obj)
	return &song
}
