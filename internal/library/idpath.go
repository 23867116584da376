package library

import "strings"

// rootSentinel is UPnP's conventional root object id and the marker
// this adapter uses in synthetic HostPaths to mean "next segment is an
// opaque id, not a name".
const rootSentinel = "0"

// isIDPath reports whether tail is of the form "0/<id>" with a
// non-empty id, returning that id. tail == "0" alone is not an
// ID-path, since no id follows it.
func isIDPath(tail string) (id string, ok bool) {
	if !strings.HasPrefix(tail, rootSentinel+"/") {
		return "", false
	}
	id = tail[len(rootSentinel)+1:]
	if id == "" {
		return "", false
	}
	return id, true
}
