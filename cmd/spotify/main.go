// Command spotify queries the Spotify catalog from the command line and prints
// the raw JSON responses. Credentials are read from SPOTIFY_CLIENT_ID and
// SPOTIFY_CLIENT_SECRET (or a .env file); without them requests are sent
// unauthenticated.
//
//	spotify album 4aawyAB9vmqN3uQ7FjRGTy
//	spotify search Incubus artist,album
//	spotify tracks Incubus Muse
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	libspotify "github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"

	"Spotify-Wrapper-Go/internal/config"
	"Spotify-Wrapper-Go/pkg/future"
	"Spotify-Wrapper-Go/pkg/query"
	"Spotify-Wrapper-Go/pkg/spotify"
)

const usage = `usage: spotify [flags] <command> <args>

commands:
  album <id>            album-tracks <id>
  artist <id>           track <id>
  playlist <id>
  search <query> <type[,type...]>
  artists|albums|tracks|playlists <query> [<query>...]`

var errUsage = errors.New(usage)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		logrus.Fatalf(".env: %v", err)
	}
	if err := run(context.Background(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, dispatches one command and writes each response body to
// stdout.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	cfg, rest, err := config.Load(args, getenv)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	metrics, err := spotify.NewMetrics(reg)
	if err != nil {
		return err
	}
	if cfg.Metrics {
		defer dumpMetrics(reg, stderr, logger)
	}

	client := spotify.NewHTTPClient(newHTTPClient(ctx, cfg), logger,
		spotify.WithBaseURL(cfg.APIBase), spotify.WithMetrics(metrics))

	pending, err := dispatch(ctx, client, rest)
	if err != nil {
		return err
	}
	var failed error
	for _, p := range pending {
		if err := printResponse(ctx, p, stdout, logger); err != nil && failed == nil {
			failed = err
		}
	}
	return failed
}

// newHTTPClient mirrors the web app's setup: with credentials the client
// credentials flow supplies the token, otherwise a plain client is used.
func newHTTPClient(ctx context.Context, cfg *config.Config) *http.Client {
	var hc *http.Client
	if cfg.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     libspotify.TokenURL,
		}
		hc = cc.Client(ctx)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = cfg.Timeout
	return hc
}

// dispatch starts every request for the command before any is awaited, so
// multi-query commands run concurrently.
func dispatch(ctx context.Context, c *spotify.Client[*http.Response], args []string) ([]*future.Future[*http.Response], error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	cmd, args := args[0], args[1:]

	lookups := map[string]func(context.Context, string) *future.Future[*http.Response]{
		"album":        c.GetAlbum,
		"album-tracks": c.GetAlbumTracks,
		"artist":       c.GetArtist,
		"track":        c.GetTrack,
		"playlist":     c.GetPlaylist,
	}
	searches := map[string]func(context.Context, string) *future.Future[*http.Response]{
		"artists":   c.SearchArtists,
		"albums":    c.SearchAlbums,
		"tracks":    c.SearchTracks,
		"playlists": c.SearchPlaylists,
	}

	switch {
	case cmd == "search":
		if len(args) != 2 {
			return nil, errUsage
		}
		return []*future.Future[*http.Response]{c.Search(ctx, args[0], query.ParseTypes(args[1])...)}, nil
	case lookups[cmd] != nil:
		if len(args) != 1 {
			return nil, errUsage
		}
		return []*future.Future[*http.Response]{lookups[cmd](ctx, args[0])}, nil
	case searches[cmd] != nil:
		if len(args) == 0 {
			return nil, errUsage
		}
		pending := make([]*future.Future[*http.Response], len(args))
		for i, q := range args {
			pending[i] = searches[cmd](ctx, q)
		}
		return pending, nil
	}
	return nil, fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func printResponse(ctx context.Context, p *future.Future[*http.Response], w io.Writer, logger logrus.FieldLogger) error {
	resp, err := p.Await(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.WithField("status", resp.StatusCode).Error("spotify returned an error response")
		return fmt.Errorf("spotify api error: %s", resp.Status)
	}
	return nil
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer, logger logrus.FieldLogger) {
	mfs, err := g.Gather()
	if err != nil {
		logger.WithError(err).Warn("gather metrics")
		return
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			logger.WithError(err).Warn("write metrics")
			return
		}
	}
}
