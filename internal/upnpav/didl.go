package upnpav

import (
	"encoding/xml"
	"strings"

	"github.com/nsavage/upnpdb/pkg/dbapi"
)

// didlLite mirrors the subset of DIDL-Lite fields this adapter reads,
// grounded on the DIDL parsing done for browse/search responses: dc:*
// and upnp:* elements per http://upnp.org/schemas/av/didl-lite-v3.xsd.
type didlLite struct {
	XMLName    xml.Name     `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ DIDL-Lite"`
	Items      []didlObject `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ item"`
	Containers []didlObject `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ container"`
}

type didlObject struct {
	ID         string    `xml:"id,attr"`
	ParentID   string    `xml:"parentID,attr"`
	Title      string    `xml:"http://purl.org/dc/elements/1.1/ title"`
	Class      string    `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ class"`
	Album      string    `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ album"`
	Artist     string    `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ artist"`
	AlbumArtist string   `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ albumArtist"`
	Genre      string    `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ genre"`
	Creator    string    `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Date       string    `xml:"http://purl.org/dc/elements/1.1/ date"`
	Track      string    `xml:"urn:schemas-upnp-org:metadata-1-0/upnp/ originalTrackNumber"`
	Resources  []didlRes `xml:"res"`
}

type didlRes struct {
	Value        string `xml:",chardata"`
	ProtocolInfo string `xml:"protocolInfo,attr"`
}

// parseDIDL decodes a DIDL-Lite fragment (the <Result> payload of a
// Browse/Search SOAP response) into DirObjects.
func parseDIDL(fragment string) (DirContent, error) {
	var doc didlLite
	if err := xml.Unmarshal([]byte(fragment), &doc); err != nil {
		return DirContent{}, err
	}
	content := DirContent{Objects: make([]DirObject, 0, len(doc.Items)+len(doc.Containers))}
	for _, c := range doc.Containers {
		content.Objects = append(content.Objects, toDirObject(c, ObjectContainer))
	}
	for _, it := range doc.Items {
		content.Objects = append(content.Objects, toDirObject(it, ObjectItem))
	}
	return content, nil
}

func toDirObject(obj didlObject, objType ObjectType) DirObject {
	d := DirObject{
		ID:       obj.ID,
		ParentID: obj.ParentID,
		Name:     obj.Title,
		Type:     objType,
		Class:    classifyItem(obj.Class),
		Tag:      tagsFromDIDL(obj),
	}
	if objType == ObjectItem && len(obj.Resources) > 0 {
		d.URL = obj.Resources[0].Value
	}
	return d
}

func classifyItem(class string) ItemClass {
	lower := strings.ToLower(class)
	switch {
	case strings.Contains(lower, "audioitem") || strings.Contains(lower, "musictrack"):
		return ItemMusic
	case strings.Contains(lower, "playlistitem"):
		return ItemPlaylist
	default:
		return ItemUnknown
	}
}

func tagsFromDIDL(obj didlObject) dbapi.Tag {
	tag := dbapi.Tag{}
	set := func(t dbapi.TagType, v string) {
		if v != "" {
			tag[t] = v
		}
	}
	set(dbapi.TagTitle, obj.Title)
	set(dbapi.TagArtist, obj.Artist)
	set(dbapi.TagAlbumArtist, obj.AlbumArtist)
	set(dbapi.TagAlbum, obj.Album)
	set(dbapi.TagGenre, obj.Genre)
	set(dbapi.TagComposer, obj.Creator)
	set(dbapi.TagDate, obj.Date)
	set(dbapi.TagTrack, obj.Track)
	return tag
}
