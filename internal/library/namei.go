package library

import (
	"strings"

	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// namei resolves a slash-separated path tail against a server's tree,
// starting from the root container, and returns the resolved object.
// An empty tail resolves to the root container's own metadata.
func namei(server upnpav.ContentDirectoryService, tail string) (upnpav.DirObject, error) {
	if tail == "" {
		return getMetadata(server, rootSentinel)
	}

	objectID := rootSentinel
	for {
		head, rest, hasRest := cutPath(tail)

		content, err := readDir(server, objectID)
		if err != nil {
			return upnpav.DirObject{}, err
		}
		child, found := content.FindByName(head)
		if !found {
			return upnpav.DirObject{}, dbapi.NewNotFound("no such name: " + head)
		}
		if !hasRest {
			return child, nil
		}
		if child.Type != upnpav.ObjectContainer {
			return upnpav.DirObject{}, dbapi.NewNotFound("not a container: " + head)
		}
		objectID = child.ID
		tail = rest
	}
}

// cutPath splits tail at its first '/'. hasRest reports whether a
// separator was found at all, distinguishing a final segment from one
// followed by an empty remainder (consecutive slashes).
func cutPath(tail string) (head, rest string, hasRest bool) {
	idx := strings.IndexByte(tail, '/')
	if idx < 0 {
		return tail, "", false
	}
	return tail[:idx], tail[idx+1:], true
}
