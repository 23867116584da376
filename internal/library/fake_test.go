package library

import (
	"github.com/nsavage/upnpdb/internal/upnpav"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// fakeServer is an in-memory ContentDirectoryService for tests: a flat
// map of objectID to its children, keyed the way readDir would return
// them, plus a metadata lookup and a canned search result.
type fakeServer struct {
	name     string
	children map[string][]upnpav.DirObject
	caps     []string
	capsErr  error

	searchCriteria string
	searchResult   upnpav.DirContent
	searchErr      error
}

func newFakeServer(name string) *fakeServer {
	return &fakeServer{name: name, children: map[string][]upnpav.DirObject{}}
}

func (f *fakeServer) FriendlyName() string { return f.name }

func (f *fakeServer) ReadDir(objectID string) (upnpav.DirContent, error) {
	return upnpav.DirContent{Objects: f.children[objectID]}, nil
}

func (f *fakeServer) GetMetadata(objectID string) (upnpav.DirContent, error) {
	if objectID == rootSentinel {
		return upnpav.DirContent{Objects: []upnpav.DirObject{{ID: rootSentinel, Type: upnpav.ObjectContainer, Name: f.name}}}, nil
	}
	for _, list := range f.children {
		for _, obj := range list {
			if obj.ID == objectID {
				return upnpav.DirContent{Objects: []upnpav.DirObject{obj}}, nil
			}
		}
	}
	return upnpav.DirContent{}, nil
}

func (f *fakeServer) Search(objectID, criteria string) (upnpav.DirContent, error) {
	f.searchCriteria = criteria
	return f.searchResult, f.searchErr
}

func (f *fakeServer) SearchCapabilities() ([]string, error) {
	return f.caps, f.capsErr
}

func (f *fakeServer) addChild(parentID string, obj upnpav.DirObject) {
	f.children[parentID] = append(f.children[parentID], obj)
}

// fakeDiscovery is a static Discovery snapshot.
type fakeDiscovery struct {
	servers []upnpav.ContentDirectoryService
}

func (d *fakeDiscovery) Start() error                            { return nil }
func (d *fakeDiscovery) Stop()                                   {}
func (d *fakeDiscovery) Directories() []upnpav.ContentDirectoryService { return d.servers }

func musicItem(id, parentID, name, url string) upnpav.DirObject {
	return upnpav.DirObject{
		ID:       id,
		ParentID: parentID,
		Name:     name,
		Type:     upnpav.ObjectItem,
		Class:    upnpav.ItemMusic,
		URL:      url,
		Tag:      dbapi.Tag{dbapi.TagTitle: name},
	}
}

func container(id, parentID, name string) upnpav.DirObject {
	return upnpav.DirObject{
		ID:       id,
		ParentID: parentID,
		Name:     name,
		Type:     upnpav.ObjectContainer,
	}
}
