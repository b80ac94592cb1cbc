package lazyframe

import (
	"strconv"
	"strings"
)

// Hooks are user callbacks fired during an element's lifecycle.
// Nil hooks are skipped.
type Hooks struct {
	// OnLoad fires once the element has been initialized.
	OnLoad func(rec *Record)

	// OnAppend fires after the frame has been attached to the element.
	OnAppend func(frame *Frame)

	// OnThumbnailLoad fires when a thumbnail URL was fetched from the
	// metadata endpoint.
	OnThumbnailLoad func(url string)
}

// Load calls OnLoad if set.
func (h Hooks) Load(rec *Record) {
	if h.OnLoad != nil {
		h.OnLoad(rec)
	}
}

// Append calls OnAppend if set.
func (h Hooks) Append(frame *Frame) {
	if h.OnAppend != nil {
		h.OnAppend(frame)
	}
}

// ThumbnailLoad calls OnThumbnailLoad if set.
func (h Hooks) ThumbnailLoad(url string) {
	if h.OnThumbnailLoad != nil {
		h.OnThumbnailLoad(url)
	}
}

// Config is one layer of user configuration. Empty strings and nil flags
// are unset and leave the lower layer's value in place.
type Config struct {
	Vendor     string
	ID         string
	Src        string
	Thumbnail  string
	Title      string
	Lazyload   *bool
	Autoplay   *bool
	InitInView *bool

	Hooks Hooks
}

// Bool returns a pointer to v, for use in Config.
func Bool(v bool) *bool {
	return &v
}

// Settings is the fully resolved configuration of one element.
// Empty strings mean the field is absent.
type Settings struct {
	Vendor      Vendor
	ID          string
	Src         string
	OriginalSrc string
	Query       string
	Thumbnail   string
	Title       string
	Lazyload    bool
	Autoplay    bool
	InitInView  bool

	Hooks Hooks
}

// DefaultSettings returns the library defaults.
func DefaultSettings() Settings {
	return Settings{
		Lazyload: true,
		Autoplay: true,
	}
}

// HasMetadata reports whether both title and thumbnail are known.
func (s *Settings) HasMetadata() bool {
	return s.Title != "" && s.Thumbnail != ""
}

// NeedsMetadata reports whether the metadata endpoint should be asked for
// missing fields. Raw-src embeds never use it.
func (s *Settings) NeedsMetadata() bool {
	return s.Vendor != VendorNone && !s.HasMetadata()
}

// Merge applies layers over defaults in order, later layers winning.
// Vendor names are parsed after merging; unknown names become VendorNone.
func Merge(defaults Settings, layers ...Config) Settings {
	s := defaults
	vendor := string(defaults.Vendor)
	for _, c := range layers {
		setString(&vendor, c.Vendor)
		setString(&s.ID, c.ID)
		setString(&s.Src, c.Src)
		setString(&s.Thumbnail, c.Thumbnail)
		setString(&s.Title, c.Title)
		setBool(&s.Lazyload, c.Lazyload)
		setBool(&s.Autoplay, c.Autoplay)
		setBool(&s.InitInView, c.InitInView)
		if c.Hooks.OnLoad != nil {
			s.Hooks.OnLoad = c.Hooks.OnLoad
		}
		if c.Hooks.OnAppend != nil {
			s.Hooks.OnAppend = c.Hooks.OnAppend
		}
		if c.Hooks.OnThumbnailLoad != nil {
			s.Hooks.OnThumbnailLoad = c.Hooks.OnThumbnailLoad
		}
	}
	s.Vendor = ParseVendor(vendor)
	return s
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ParseAttributes converts element attributes into a configuration layer.
// A leading "data-" is stripped from names and empty values are ignored.
// Flags that do not parse as booleans are left unset.
func ParseAttributes(attrs []Attribute) Config {
	var c Config
	for _, a := range attrs {
		if a.Value == "" {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(a.Name, "data-"))
		switch name {
		case "vendor":
			c.Vendor = a.Value
		case "id":
			c.ID = a.Value
		case "src":
			c.Src = a.Value
		case "thumbnail":
			c.Thumbnail = a.Value
		case "title":
			c.Title = a.Value
		case "lazyload":
			c.Lazyload = parseBool(a.Value)
		case "autoplay":
			c.Autoplay = parseBool(a.Value)
		case "initinview":
			c.InitInView = parseBool(a.Value)
		}
	}
	return c
}

func parseBool(v string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &b
}

// SplitQuery returns the part of src after the first "?".
// Returns false when there is no non-empty remainder.
func SplitQuery(src string) (string, bool) {
	_, query, found := strings.Cut(src, "?")
	if !found || query == "" {
		return "", false
	}
	return query, true
}

// Resolve produces the settings of one element: defaults, then the global
// configuration, then the element's attributes, then the computed source
// fields. When a vendor is set, ID is taken from the source URL and left
// empty if the vendor's pattern does not yield a valid ID.
func Resolve(global Config, attrs []Attribute) Settings {
	layer := ParseAttributes(attrs)
	s := Merge(DefaultSettings(), global, layer)

	raw := layer.Src
	if raw == "" {
		raw = s.Src
	}
	s.OriginalSrc = layer.Src
	s.Query, _ = SplitQuery(raw)

	if s.Vendor != VendorNone {
		s.ID, _ = s.Vendor.MatchID(s.Src)
	}
	return s
}

// ImageSet renders a thumbnail value as a CSS image-set. Whitespace is
// stripped and a comma separates a second URL, used for high-DPI variants.
func ImageSet(thumbnail string) string {
	urls := strings.Split(strings.Join(strings.Fields(thumbnail), ""), ",")
	set := "url(" + urls[0] + ") 1x"
	if len(urls) > 1 {
		set += ", url(" + urls[1] + ") 1x"
	}
	return "-webkit-image-set(" + set + ")"
}
