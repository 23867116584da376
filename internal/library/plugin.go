package library

import "github.com/nsavage/upnpdb/pkg/dbapi"

// PluginName is the database plugin name a host registers this
// adapter under.
const PluginName = "upnp"

// Plugin describes the database plugin vtable a host looks up by
// name and uses to construct bound adapter instances.
type Plugin struct {
	Name    string
	Flags   int
	Factory func(Config) dbapi.Database
}

// NewPlugin returns the upnp database plugin descriptor.
func NewPlugin() Plugin {
	return Plugin{
		Name:  PluginName,
		Flags: 0,
		Factory: func(cfg Config) dbapi.Database {
			return NewFacade(cfg)
		},
	}
}
