package upnpav

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// deviceDescription is the SSDP device description document fetched
// from a discovery Location URL, grounded on the equivalent struct
// used to resolve a MediaServer's ContentDirectory control URL.
type deviceDescription struct {
	URLBase string `xml:"URLBase"`
	Device  struct {
		FriendlyName string          `xml:"friendlyName"`
		UDN          string          `xml:"UDN"`
		IconList     []deviceIcon    `xml:"iconList>icon"`
		Services     []deviceService `xml:"serviceList>service"`
	} `xml:"device"`
}

type deviceService struct {
	ServiceType string `xml:"serviceType"`
	ControlURL  string `xml:"controlURL"`
}

type deviceIcon struct {
	URL string `xml:"url"`
}

func parseDeviceDescription(data []byte) (deviceDescription, error) {
	var desc deviceDescription
	if err := xml.Unmarshal(data, &desc); err != nil {
		return deviceDescription{}, err
	}
	return desc, nil
}

func (d deviceDescription) contentDirectory() (deviceService, bool) {
	for _, svc := range d.Device.Services {
		if strings.Contains(strings.ToLower(svc.ServiceType), "contentdirectory") {
			return svc, true
		}
	}
	return deviceService{}, false
}

func (d deviceDescription) baseURL(location string) string {
	if strings.TrimSpace(d.URLBase) != "" {
		return strings.TrimRight(d.URLBase, "/")
	}
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

func (d deviceDescription) iconURL(base string) string {
	if len(d.Device.IconList) == 0 {
		return ""
	}
	return resolveURL(base, d.Device.IconList[0].URL)
}

var errNoContentDirectory = errors.New("device has no ContentDirectory service")

func resolveURL(baseURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		base.Path = path.Join(base.Path, ref)
		return base.String()
	}
	return base.ResolveReference(rel).String()
}
