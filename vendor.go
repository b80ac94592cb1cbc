package lazyframe

import (
	"fmt"
	"regexp"
)

// Vendor identifies a supported video provider.
type Vendor string

// Supported vendors. VendorNone means the element embeds its raw src.
const (
	VendorNone            Vendor = ""
	VendorYouTube         Vendor = "youtube"
	VendorYouTubeNoCookie Vendor = "youtube_nocookie"
	VendorVimeo           Vendor = "vimeo"
)

// vendorPattern holds everything that differs between vendors.
type vendorPattern struct {
	detect   *regexp.Regexp
	validate func(match []string) (string, bool)
	embed    string // format with id, autoplay flag
}

var vendors = map[Vendor]vendorPattern{
	VendorYouTube: {
		detect:   regexp.MustCompile(`(?:youtube\.com/\S*(?:(?:/e(?:mbed))?/|watch\?(?:\S*?&?v=))|youtu\.be/)([a-zA-Z0-9_-]{6,11})`),
		validate: captureLength(11),
		embed:    "https://www.youtube.com/embed/%s/?autoplay=%s",
	},
	VendorYouTubeNoCookie: {
		detect:   regexp.MustCompile(`(?:youtube-nocookie\.com/\S*(?:(?:/e(?:mbed))?/|watch\?(?:\S*?&?v=)))([a-zA-Z0-9_-]{6,11})`),
		validate: captureLength(11),
		embed:    "https://www.youtube-nocookie.com/embed/%s/?autoplay=%s",
	},
	VendorVimeo: {
		detect:   regexp.MustCompile(`vimeo\.com/(?:video/)?([0-9]*)(?:\?|)`),
		validate: captureLength(8, 9),
		embed:    "https://player.vimeo.com/video/%s/?autoplay=%s",
	},
}

// captureLength accepts the first capture group when its length is one of n.
func captureLength(n ...int) func([]string) (string, bool) {
	return func(match []string) (string, bool) {
		if len(match) < 2 {
			return "", false
		}
		for _, want := range n {
			if len(match[1]) == want {
				return match[1], true
			}
		}
		return "", false
	}
}

// ParseVendor returns the vendor with the given name.
// Unknown names return VendorNone.
func ParseVendor(name string) Vendor {
	v := Vendor(name)
	if _, ok := vendors[v]; ok {
		return v
	}
	return VendorNone
}

// Vendors returns all supported vendors.
func Vendors() []Vendor {
	return []Vendor{VendorYouTube, VendorYouTubeNoCookie, VendorVimeo}
}

// Known reports whether v is a supported vendor.
func (v Vendor) Known() bool {
	_, ok := vendors[v]
	return ok
}

// MatchID extracts the media ID from src using the vendor's detection
// pattern and validation rule. Returns false when src does not match or
// the captured ID has the wrong length.
func (v Vendor) MatchID(src string) (string, bool) {
	p, ok := vendors[v]
	if !ok {
		return "", false
	}
	return p.validate(p.detect.FindStringSubmatch(src))
}

// EmbedURL builds the vendor's player URL for id. The query, when present,
// is appended after the autoplay flag.
func (v Vendor) EmbedURL(id string, autoplay bool, query string) (string, error) {
	p, ok := vendors[v]
	if !ok {
		return "", Errorf(EINVALID, "unknown vendor %q", v)
	}
	if id == "" {
		return "", Errorf(EINVALID, "%s embed requires an id", v)
	}
	flag := "0"
	if autoplay {
		flag = "1"
	}
	u := fmt.Sprintf(p.embed, id, flag)
	if query != "" {
		u += "&" + query
	}
	return u, nil
}
