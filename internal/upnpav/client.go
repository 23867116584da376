package upnpav

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SoapClient is a ContentDirectoryService backed by real SOAP calls
// against one MediaServer's ContentDirectory:1 control URL, grounded on
// the Browse/Search envelope construction and response decoding used
// against real MediaServers.
type SoapClient struct {
	friendlyName string
	controlURL   string
	serviceType  string

	http  *http.Client
	cache *responseCache
	log   *zap.Logger
}

// NewSoapClient builds a client for one already-described MediaServer.
func NewSoapClient(friendlyName, controlURL, serviceType string, httpClient *http.Client, cache *responseCache, log *zap.Logger) *SoapClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SoapClient{
		friendlyName: friendlyName,
		controlURL:   controlURL,
		serviceType:  serviceType,
		http:         httpClient,
		cache:        cache,
		log:          log,
	}
}

// FriendlyName implements ContentDirectoryService.
func (c *SoapClient) FriendlyName() string { return c.friendlyName }

// ReadDir implements ContentDirectoryService via BrowseDirectChildren.
func (c *SoapClient) ReadDir(objectID string) (DirContent, error) {
	if c.cache != nil {
		if cached, ok := c.cache.getBrowse(c.friendlyName, objectID); ok {
			return cached, nil
		}
	}
	content, err := c.browse(objectID, "BrowseDirectChildren")
	if err != nil {
		return DirContent{}, err
	}
	if c.cache != nil {
		c.cache.putBrowse(c.friendlyName, objectID, content)
	}
	return content, nil
}

// GetMetadata implements ContentDirectoryService via BrowseMetadata.
func (c *SoapClient) GetMetadata(objectID string) (DirContent, error) {
	if c.cache != nil {
		if cached, ok := c.cache.getMetadata(c.friendlyName, objectID); ok {
			return cached, nil
		}
	}
	content, err := c.browse(objectID, "BrowseMetadata")
	if err != nil {
		return DirContent{}, err
	}
	if c.cache != nil {
		c.cache.putMetadata(c.friendlyName, objectID, content)
	}
	return content, nil
}

// Search implements ContentDirectoryService.
func (c *SoapClient) Search(objectID, criteria string) (DirContent, error) {
	envelope := buildSearchEnvelope(c.serviceType, objectID, criteria)
	env, err := c.call("Search", envelope)
	if err != nil {
		return DirContent{}, err
	}
	return parseDIDL(env.Body.SearchResponse.Result)
}

// SearchCapabilities implements ContentDirectoryService.
func (c *SoapClient) SearchCapabilities() ([]string, error) {
	envelope := buildSearchCapsEnvelope(c.serviceType)
	env, err := c.call("GetSearchCapabilities", envelope)
	if err != nil {
		return nil, err
	}
	caps := strings.TrimSpace(env.Body.SearchCapsResponse.SearchCaps)
	if caps == "" {
		return nil, nil
	}
	parts := strings.Split(caps, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *SoapClient) browse(objectID, flag string) (DirContent, error) {
	envelope := buildBrowseEnvelope(c.serviceType, objectID, flag)
	env, err := c.call("Browse", envelope)
	if err != nil {
		return DirContent{}, err
	}
	return parseDIDL(env.Body.BrowseResponse.Result)
}

func (c *SoapClient) call(action string, envelope []byte) (soapEnvelope, error) {
	req, err := http.NewRequest(http.MethodPost, c.controlURL, bytes.NewReader(envelope))
	if err != nil {
		return soapEnvelope{}, err
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf(`"%s#%s"`, c.serviceType, action))

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("content directory call failed",
			zap.String("server", c.friendlyName), zap.String("action", action), zap.Error(err))
		return soapEnvelope{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		c.log.Debug("content directory call http error",
			zap.String("server", c.friendlyName), zap.String("action", action), zap.Int("status", resp.StatusCode))
		return soapEnvelope{}, fmt.Errorf("content directory error: %s", resp.Status)
	}
	var env soapEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return soapEnvelope{}, err
	}
	if env.Body.Fault != nil {
		return soapEnvelope{}, fmt.Errorf("content directory fault: %s", env.Body.Fault.String)
	}
	c.log.Debug("content directory call ok",
		zap.String("server", c.friendlyName), zap.String("action", action), zap.Duration("duration", time.Since(started)))
	return env, nil
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		BrowseResponse     browseResult    `xml:"BrowseResponse"`
		SearchResponse     browseResult    `xml:"SearchResponse"`
		SearchCapsResponse searchCapsResult `xml:"GetSearchCapabilitiesResponse"`
		Fault              *soapFault      `xml:"Fault"`
	} `xml:"Body"`
}

type browseResult struct {
	Result         string `xml:"Result"`
	NumberReturned int64  `xml:"NumberReturned"`
	TotalMatches   int64  `xml:"TotalMatches"`
}

type searchCapsResult struct {
	SearchCaps string `xml:"SearchCaps"`
}

type soapFault struct {
	String string `xml:"faultstring"`
}

func buildBrowseEnvelope(serviceType, objectID, flag string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body><u:Browse xmlns:u="` + serviceType + `">`)
	buf.WriteString(`<ObjectID>` + xmlEscape(objectID) + `</ObjectID>`)
	buf.WriteString(`<BrowseFlag>` + flag + `</BrowseFlag>`)
	buf.WriteString(`<Filter>*</Filter>`)
	buf.WriteString(`<StartingIndex>0</StartingIndex>`)
	buf.WriteString(`<RequestedCount>0</RequestedCount>`)
	buf.WriteString(`<SortCriteria></SortCriteria>`)
	buf.WriteString(`</u:Browse></s:Body></s:Envelope>`)
	return buf.Bytes()
}

func buildSearchEnvelope(serviceType, containerID, criteria string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body><u:Search xmlns:u="` + serviceType + `">`)
	buf.WriteString(`<ContainerID>` + xmlEscape(containerID) + `</ContainerID>`)
	buf.WriteString(`<SearchCriteria>` + xmlEscape(criteria) + `</SearchCriteria>`)
	buf.WriteString(`<Filter>*</Filter>`)
	buf.WriteString(`<StartingIndex>0</StartingIndex>`)
	buf.WriteString(`<RequestedCount>0</RequestedCount>`)
	buf.WriteString(`<SortCriteria></SortCriteria>`)
	buf.WriteString(`</u:Search></s:Body></s:Envelope>`)
	return buf.Bytes()
}

func buildSearchCapsEnvelope(serviceType string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body><u:GetSearchCapabilities xmlns:u="` + serviceType + `"/></s:Body></s:Envelope>`)
	return buf.Bytes()
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`'`, "&apos;",
		`"`, "&quot;",
	)
	return replacer.Replace(value)
}
