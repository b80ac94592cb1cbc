// Package lazyframe lazily instantiates third-party video embeds inside
// placeholder elements of an HTML document. It infers the vendor and video ID
// from a source URL, optionally fetches missing title and thumbnail metadata
// from an oEmbed-style endpoint, and builds the iframe only on demand.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package lazyframe
