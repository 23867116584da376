package upnpav

import "testing"

const sampleDeviceDescription = `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <friendlyName>Living Room Server</friendlyName>
    <UDN>uuid:1234</UDN>
    <iconList><icon><url>/icon.png</url></icon></iconList>
    <serviceList>
      <service>
        <serviceType>urn:schemas-upnp-org:service:ContentDirectory:1</serviceType>
        <controlURL>/ctl/ContentDir</controlURL>
      </service>
      <service>
        <serviceType>urn:schemas-upnp-org:service:ConnectionManager:1</serviceType>
        <controlURL>/ctl/ConnMgr</controlURL>
      </service>
    </serviceList>
  </device>
</root>`

func TestParseDeviceDescriptionFindsContentDirectory(t *testing.T) {
	desc, err := parseDeviceDescription([]byte(sampleDeviceDescription))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if desc.Device.FriendlyName != "Living Room Server" {
		t.Fatalf("unexpected friendly name: %q", desc.Device.FriendlyName)
	}
	svc, ok := desc.contentDirectory()
	if !ok {
		t.Fatalf("expected a ContentDirectory service")
	}
	if svc.ControlURL != "/ctl/ContentDir" {
		t.Fatalf("unexpected control url: %q", svc.ControlURL)
	}
}

func TestDeviceDescriptionNoContentDirectory(t *testing.T) {
	desc, err := parseDeviceDescription([]byte(`<root><device><serviceList></serviceList></device></root>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := desc.contentDirectory(); ok {
		t.Fatalf("expected no ContentDirectory service")
	}
}

func TestBaseURLPrefersURLBase(t *testing.T) {
	desc, _ := parseDeviceDescription([]byte(`<root><URLBase>http://192.168.1.5:1400/</URLBase><device></device></root>`))
	if got := desc.baseURL("http://192.168.1.5:1400/description.xml"); got != "http://192.168.1.5:1400" {
		t.Fatalf("unexpected base url: %q", got)
	}
}

func TestBaseURLFallsBackToLocation(t *testing.T) {
	var desc deviceDescription
	if got := desc.baseURL("http://192.168.1.5:1400/description.xml"); got != "http://192.168.1.5:1400" {
		t.Fatalf("unexpected base url: %q", got)
	}
}

func TestResolveURLJoinsRelativePath(t *testing.T) {
	got := resolveURL("http://192.168.1.5:1400", "/ctl/ContentDir")
	if got != "http://192.168.1.5:1400/ctl/ContentDir" {
		t.Fatalf("unexpected resolved url: %q", got)
	}
}

func TestResolveURLPassesThroughAbsolute(t *testing.T) {
	got := resolveURL("http://192.168.1.5:1400", "http://other/thing")
	if got != "http://other/thing" {
		t.Fatalf("expected absolute url unchanged, got %q", got)
	}
}
