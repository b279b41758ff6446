package record

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	drivePathID  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveQueryID = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// ThumbnailURL rewrites Google Drive share links into a directly embeddable
// thumbnail link. Any other value is returned unchanged.
func ThumbnailURL(raw string) string {
	if raw == "" || !strings.Contains(raw, "drive.google.com") {
		return raw
	}
	var id string
	if m := drivePathID.FindStringSubmatch(raw); m != nil {
		id = m[1]
	} else if m := driveQueryID.FindStringSubmatch(raw); m != nil {
		id = m[1]
	}
	if id == "" {
		return raw
	}
	return "https://drive.google.com/thumbnail?id=" + url.QueryEscape(id) + "&sz=w400-h400"
}
