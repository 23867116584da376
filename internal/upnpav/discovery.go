//go:build upnp

package upnpav

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nsavage/upnpdb/internal/adapters/pupnp"
)

const mediaServerSearchTarget = "urn:schemas-upnp-org:device:MediaServer:1"

// serverExpiry is how long a MediaServer is kept after it stops
// answering SSDP searches, grounded on the stale-server sweep in the
// original discovery loop.
const serverExpiry = 15 * time.Minute

// PupnpDiscovery is the libupnp-backed Discovery implementation. It
// polls for MediaServer:1 advertisements on an interval and resolves
// each one's ContentDirectory control URL via its device description.
type PupnpDiscovery struct {
	client *pupnp.Client
	http   *http.Client
	cache  *responseCache
	log    *zap.Logger

	interval       time.Duration
	onServerChange func(id, friendlyName string, appeared bool)

	mu      sync.Mutex
	servers map[string]*discoveredServer
	stop    chan struct{}
	wg      sync.WaitGroup
}

type discoveredServer struct {
	id           string
	friendlyName string
	controlURL   string
	serviceType  string
	lastSeen     time.Time
	client       *SoapClient
}

// DiscoveryConfig configures a PupnpDiscovery instance.
type DiscoveryConfig struct {
	ListenAddr     string
	SearchInterval time.Duration
	CacheBytes     int
	CacheTTL       time.Duration
	Logger         *zap.Logger

	// OnServerChange, if set, is called whenever a server is added to
	// or dropped from the discovery table. It must not block.
	OnServerChange func(id string, friendlyName string, appeared bool)
}

// NewDiscovery initializes libupnp and returns a Discovery that has
// not yet been started.
func NewDiscovery(cfg DiscoveryConfig) (*PupnpDiscovery, error) {
	client, err := pupnp.NewClient(cfg.ListenAddr)
	if err != nil {
		return nil, err
	}
	interval := cfg.SearchInterval
	if interval <= 0 {
		interval = time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &PupnpDiscovery{
		client:         client,
		http:           &http.Client{Timeout: 10 * time.Second},
		cache:          newResponseCache(cfg.CacheBytes, cfg.CacheTTL),
		log:            log,
		interval:       interval,
		servers:        make(map[string]*discoveredServer),
		onServerChange: cfg.OnServerChange,
	}, nil
}

// Start begins periodic SSDP discovery in the background.
func (d *PupnpDiscovery) Start() error {
	d.mu.Lock()
	if d.stop != nil {
		d.mu.Unlock()
		return errors.New("discovery already started")
	}
	d.stop = make(chan struct{})
	d.mu.Unlock()

	d.refresh()
	d.wg.Add(1)
	go d.loop()
	return nil
}

// Stop halts discovery and releases libupnp resources.
func (d *PupnpDiscovery) Stop() {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	d.client.Close()
}

// Directories implements Discovery.
func (d *PupnpDiscovery) Directories() []ContentDirectoryService {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ContentDirectoryService, 0, len(d.servers))
	for _, s := range d.servers {
		out = append(out, s.client)
	}
	return out
}

func (d *PupnpDiscovery) loop() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.refresh()
		}
	}
}

func (d *PupnpDiscovery) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := d.client.Discover(ctx, mediaServerSearchTarget, 3*time.Second)
	if err != nil {
		d.log.Debug("pupnp discover failed", zap.Error(err))
		return
	}

	now := time.Now()
	seen := make(map[string]bool, len(results))
	for _, res := range results {
		server, err := d.describeServer(ctx, res.Location)
		if err != nil {
			d.log.Debug("describe server failed", zap.String("location", res.Location), zap.Error(err))
			continue
		}
		seen[server.id] = true

		d.mu.Lock()
		existing, ok := d.servers[server.id]
		isNew := !ok || existing.controlURL != server.controlURL || existing.friendlyName != server.friendlyName
		if isNew {
			server.lastSeen = now
			server.client = NewSoapClient(server.friendlyName, server.controlURL, server.serviceType, d.http, d.cache, d.log)
			d.servers[server.id] = server
			d.cache.invalidateServer(server.friendlyName)
		} else {
			existing.lastSeen = now
		}
		d.mu.Unlock()
		if isNew && d.onServerChange != nil {
			d.onServerChange(server.id, server.friendlyName, true)
		}
	}

	var dropped []*discoveredServer
	d.mu.Lock()
	for id, srv := range d.servers {
		if seen[id] {
			continue
		}
		if now.Sub(srv.lastSeen) > serverExpiry {
			dropped = append(dropped, srv)
			delete(d.servers, id)
		}
	}
	d.mu.Unlock()
	if d.onServerChange != nil {
		for _, srv := range dropped {
			d.onServerChange(srv.id, srv.friendlyName, false)
		}
	}

	d.log.Debug("pupnp discovery refreshed",
		zap.Int("results", len(results)),
		zap.Int("servers", len(d.servers)),
	)
}

func (d *PupnpDiscovery) describeServer(ctx context.Context, location string) (*discoveredServer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, errors.New("device description error: " + resp.Status)
	}
	body := make([]byte, 0, 4096)
	buf := make([]byte, 4096)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
		}
		if rerr != nil {
			break
		}
	}
	desc, err := parseDeviceDescription(body)
	if err != nil {
		return nil, err
	}
	service, ok := desc.contentDirectory()
	if !ok {
		return nil, errNoContentDirectory
	}
	base := desc.baseURL(location)
	controlURL := resolveURL(base, service.ControlURL)
	serverID := strings.TrimPrefix(desc.Device.UDN, "uuid:")
	if serverID == "" {
		serverID = desc.Device.FriendlyName
	}
	return &discoveredServer{
		id:           serverID,
		friendlyName: desc.Device.FriendlyName,
		controlURL:   controlURL,
		serviceType:  service.ServiceType,
	}, nil
}
