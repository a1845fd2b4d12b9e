// Package spotify is a thin client for the Spotify Web API catalog. Each
// operation builds a URL with the query package, issues exactly one GET through
// an injected Fetcher and returns the pending result to the caller unchanged.
//
// The client performs no retries, adds no timeout and does not look at the
// response status. Callers that want typed data can pass the resolved
// *http.Response to one of the Decode helpers.
package spotify

import (
	"context"
	"time"

	"Spotify-Wrapper-Go/pkg/future"
	"Spotify-Wrapper-Go/pkg/query"
)

// Fetcher is the HTTP capability the client depends on. Fetch issues a single
// GET to rawURL and returns whatever the transport produced.
type Fetcher[R any] interface {
	Fetch(ctx context.Context, rawURL string) (R, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc[R any] func(ctx context.Context, rawURL string) (R, error)

// Fetch calls f(ctx, rawURL).
func (f FetcherFunc[R]) Fetch(ctx context.Context, rawURL string) (R, error) {
	return f(ctx, rawURL)
}

// Client dispatches catalog requests through a Fetcher. R is the opaque
// response type produced by the fetcher, *http.Response for HTTPFetcher.
type Client[R any] struct {
	fetcher Fetcher[R]
	urls    query.Builder
	metrics *Metrics
}

type options struct {
	base    string
	metrics *Metrics
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL sends requests to base instead of query.BaseURL.
func WithBaseURL(base string) Option {
	return func(o *options) { o.base = base }
}

// WithMetrics records every dispatched request in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New returns a Client issuing requests through f.
func New[R any](f Fetcher[R], opts ...Option) *Client[R] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Client[R]{
		fetcher: f,
		urls:    query.Builder{Base: o.base},
		metrics: o.metrics,
	}
}

// Search queries the catalog for q restricted to types. Multiple types are sent
// as a comma separated list in the order given.
func (c *Client[R]) Search(ctx context.Context, q string, types ...query.Type) *future.Future[R] {
	u, err := c.urls.SearchURL(q, types...)
	return c.dispatch(ctx, "search", u, err)
}

// SearchArtists is Search(ctx, q, query.Artist).
func (c *Client[R]) SearchArtists(ctx context.Context, q string) *future.Future[R] {
	return c.Search(ctx, q, query.Artist)
}

// SearchAlbums is Search(ctx, q, query.Album).
func (c *Client[R]) SearchAlbums(ctx context.Context, q string) *future.Future[R] {
	return c.Search(ctx, q, query.Album)
}

// SearchTracks is Search(ctx, q, query.Track).
func (c *Client[R]) SearchTracks(ctx context.Context, q string) *future.Future[R] {
	return c.Search(ctx, q, query.Track)
}

// SearchPlaylists is Search(ctx, q, query.Playlist).
func (c *Client[R]) SearchPlaylists(ctx context.Context, q string) *future.Future[R] {
	return c.Search(ctx, q, query.Playlist)
}

// GetAlbum fetches a single album by Spotify ID.
func (c *Client[R]) GetAlbum(ctx context.Context, id string) *future.Future[R] {
	u, err := c.urls.AlbumURL(id)
	return c.dispatch(ctx, "album", u, err)
}

// GetAlbumTracks fetches the first page of an album's tracks.
func (c *Client[R]) GetAlbumTracks(ctx context.Context, id string) *future.Future[R] {
	u, err := c.urls.AlbumTracksURL(id)
	return c.dispatch(ctx, "album_tracks", u, err)
}

// GetArtist fetches a single artist by Spotify ID.
func (c *Client[R]) GetArtist(ctx context.Context, id string) *future.Future[R] {
	u, err := c.urls.ArtistURL(id)
	return c.dispatch(ctx, "artist", u, err)
}

// GetTrack fetches a single track by Spotify ID.
func (c *Client[R]) GetTrack(ctx context.Context, id string) *future.Future[R] {
	u, err := c.urls.TrackURL(id)
	return c.dispatch(ctx, "track", u, err)
}

// GetPlaylist fetches a single playlist by Spotify ID.
func (c *Client[R]) GetPlaylist(ctx context.Context, id string) *future.Future[R] {
	u, err := c.urls.PlaylistURL(id)
	return c.dispatch(ctx, "playlist", u, err)
}

// dispatch starts one Fetch for rawURL. A URL build error resolves the future
// immediately and the fetcher is never called.
func (c *Client[R]) dispatch(ctx context.Context, op, rawURL string, err error) *future.Future[R] {
	if err != nil {
		c.metrics.observe(op, outcomeInvalid, 0)
		var zero R
		return future.Resolved(zero, err)
	}
	return future.Go(ctx, func(ctx context.Context) (R, error) {
		start := time.Now()
		res, err := c.fetcher.Fetch(ctx, rawURL)
		c.metrics.observe(op, outcomeOf(err), time.Since(start))
		return res, err
	})
}
