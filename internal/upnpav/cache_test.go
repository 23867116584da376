package upnpav

import (
	"testing"
	"time"
)

func TestResponseCachePutGetRoundTrip(t *testing.T) {
	c := newResponseCache(1<<20, time.Minute)
	content := DirContent{Objects: []DirObject{{ID: "1", Name: "Music", Type: ObjectContainer}}}

	c.putBrowse("srv", "0", content)
	got, ok := c.getBrowse("srv", "0")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if len(got.Objects) != 1 || got.Objects[0].Name != "Music" {
		t.Fatalf("unexpected cached content: %+v", got)
	}
}

func TestResponseCacheBrowseAndMetadataAreSeparateNamespaces(t *testing.T) {
	c := newResponseCache(1<<20, time.Minute)
	c.putBrowse("srv", "0", DirContent{Objects: []DirObject{{ID: "browse"}}})

	if _, ok := c.getMetadata("srv", "0"); ok {
		t.Fatalf("expected no metadata entry from a browse put")
	}
}

func TestResponseCacheMissReturnsFalse(t *testing.T) {
	c := newResponseCache(1<<20, time.Minute)
	if _, ok := c.getBrowse("srv", "missing"); ok {
		t.Fatalf("expected cache miss")
	}
}

func TestInvalidateServerClearsBothNamespaces(t *testing.T) {
	c := newResponseCache(1<<20, time.Minute)
	c.putBrowse("srv", "0", DirContent{Objects: []DirObject{{ID: "1"}}})
	c.putMetadata("srv", "0", DirContent{Objects: []DirObject{{ID: "1"}}})

	c.invalidateServer("srv")

	if _, ok := c.getBrowse("srv", "0"); ok {
		t.Fatalf("expected browse entry cleared")
	}
	if _, ok := c.getMetadata("srv", "0"); ok {
		t.Fatalf("expected metadata entry cleared")
	}
}
