package library

import (
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// readDir returns all immediate children of a container. No paging is
// performed: the contract is atomic-per-container.
func readDir(server upnpav.ContentDirectoryService, objectID string) (upnpav.DirContent, error) {
	return server.ReadDir(objectID)
}

// getMetadata returns exactly one object, failing bad-resource
// otherwise.
func getMetadata(server upnpav.ContentDirectoryService, objectID string) (upnpav.DirObject, error) {
	content, err := server.GetMetadata(objectID)
	if err != nil {
		return upnpav.DirObject{}, err
	}
	if len(content.Objects) != 1 {
		return upnpav.DirObject{}, dbapi.NewBadResource("getMetadata returned unexpected object count")
	}
	return content.Objects[0], nil
}
