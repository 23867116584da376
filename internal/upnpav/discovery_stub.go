//go:build !upnp

package upnpav

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Enabled indicates the upnp build tag is inactive: this binary was
// built without libupnp and cannot discover MediaServers.
const Enabled = false

// DiscoveryConfig mirrors the real config for build-time compatibility.
type DiscoveryConfig struct {
	ListenAddr     string
	SearchInterval time.Duration
	CacheBytes     int
	CacheTTL       time.Duration
	Logger         *zap.Logger
	OnServerChange func(id, friendlyName string, appeared bool)
}

// PupnpDiscovery is a stubbed Discovery that never finds a server.
type PupnpDiscovery struct{}

// NewDiscovery returns an error when the upnp build tag is disabled.
func NewDiscovery(_ DiscoveryConfig) (*PupnpDiscovery, error) {
	return nil, errors.New("upnp build tag not enabled: rebuild with -tags upnp and libupnp installed")
}

// Start implements Discovery.
func (d *PupnpDiscovery) Start() error { return errors.New("upnp build tag not enabled") }

// Stop implements Discovery.
func (d *PupnpDiscovery) Stop() {}

// Directories implements Discovery.
func (d *PupnpDiscovery) Directories() []ContentDirectoryService { return nil }
