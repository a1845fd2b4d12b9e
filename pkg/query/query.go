// Package query builds request URLs for the Spotify Web API catalog
// endpoints. Every function is pure: nothing here performs network I/O, so the
// results can be compared directly in tests or logged before dispatch.
//
// Identifiers and search terms are required. Empty values are rejected with a
// sentinel error rather than interpolated into a malformed URL.
package query

import (
	"errors"
	"net/url"
	"strings"

	libspotify "github.com/zmb3/spotify"
)

// BaseURL is the origin every catalog request is issued against.
const BaseURL = "https://api.spotify.com/v1"

var (
	// ErrMissingID is returned when an entity lookup has no identifier.
	ErrMissingID = errors.New("query: identifier required")
	// ErrMissingQuery is returned when a search has no search term.
	ErrMissingQuery = errors.New("query: search term required")
	// ErrMissingType is returned when a search has no type filter.
	ErrMissingType = errors.New("query: search type required")
)

// Type is a resource category understood by the search endpoint.
type Type string

// Resource categories accepted by the search endpoint.
const (
	Artist   Type = "artist"
	Album    Type = "album"
	Track    Type = "track"
	Playlist Type = "playlist"
)

// TypesOf expands a zmb3/spotify search type bitmask into an ordered list.
// The order is always artist, album, track, playlist regardless of how the
// flags were combined.
func TypesOf(st libspotify.SearchType) []Type {
	var types []Type
	if st&libspotify.SearchTypeArtist != 0 {
		types = append(types, Artist)
	}
	if st&libspotify.SearchTypeAlbum != 0 {
		types = append(types, Album)
	}
	if st&libspotify.SearchTypeTrack != 0 {
		types = append(types, Track)
	}
	if st&libspotify.SearchTypePlaylist != 0 {
		types = append(types, Playlist)
	}
	return types
}

// ParseTypes splits a comma separated list such as "artist,album". Blank
// elements are skipped; the remaining order is kept.
func ParseTypes(s string) []Type {
	var types []Type
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		types = append(types, Type(part))
	}
	return types
}

// Builder produces catalog URLs. The zero value targets BaseURL; Base can be
// set to point at a proxy or a test server.
type Builder struct {
	Base string
}

func (b Builder) base() string {
	if b.Base == "" {
		return BaseURL
	}
	return strings.TrimRight(b.Base, "/")
}

func (b Builder) entity(collection, id string, rest ...string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	u := b.base() + "/" + collection + "/" + url.PathEscape(id)
	for _, r := range rest {
		u += "/" + r
	}
	return u, nil
}

// AlbumURL returns the lookup URL for a single album.
func (b Builder) AlbumURL(id string) (string, error) {
	return b.entity("albums", id)
}

// AlbumTracksURL returns the URL listing the tracks of an album.
func (b Builder) AlbumTracksURL(id string) (string, error) {
	return b.entity("albums", id, "tracks")
}

// ArtistURL returns the lookup URL for a single artist.
func (b Builder) ArtistURL(id string) (string, error) {
	return b.entity("artists", id)
}

// TrackURL returns the lookup URL for a single track.
func (b Builder) TrackURL(id string) (string, error) {
	return b.entity("tracks", id)
}

// PlaylistURL returns the lookup URL for a single playlist.
func (b Builder) PlaylistURL(id string) (string, error) {
	return b.entity("playlists", id)
}

// SearchURL returns the search URL for q restricted to types. Multiple types
// are joined with a literal comma in the order given, e.g.
// "search?q=Incubus&type=artist,album".
func (b Builder) SearchURL(q string, types ...Type) (string, error) {
	if q == "" {
		return "", ErrMissingQuery
	}
	if len(types) == 0 {
		return "", ErrMissingType
	}
	escaped := make([]string, len(types))
	for i, t := range types {
		if t == "" {
			return "", ErrMissingType
		}
		escaped[i] = url.QueryEscape(string(t))
	}
	return b.base() + "/search?q=" + url.QueryEscape(q) + "&type=" + strings.Join(escaped, ","), nil
}

// The package level helpers use the zero Builder.

// AlbumURL returns the album lookup URL against BaseURL.
func AlbumURL(id string) (string, error) { return Builder{}.AlbumURL(id) }

// SearchURL returns the search URL against BaseURL.
func SearchURL(q string, types ...Type) (string, error) { return Builder{}.SearchURL(q, types...) }
