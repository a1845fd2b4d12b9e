package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	libspotify "github.com/zmb3/spotify"
)

// APIError is returned by the Decode helpers for non-2xx responses. Detail is
// set when the body carried Spotify's error object.
type APIError struct {
	StatusCode int
	Status     string
	Detail     *libspotify.Error
}

func (e *APIError) Error() string {
	if e.Detail != nil && e.Detail.Message != "" {
		return fmt.Sprintf("spotify api error: %s: %s", e.Status, e.Detail.Message)
	}
	return fmt.Sprintf("spotify api error: %s", e.Status)
}

// DecodeAlbum reads an album lookup response.
func DecodeAlbum(resp *http.Response) (*libspotify.FullAlbum, error) {
	return decode[libspotify.FullAlbum](resp)
}

// DecodeAlbumTracks reads an album tracks response.
func DecodeAlbumTracks(resp *http.Response) (*libspotify.SimpleTrackPage, error) {
	return decode[libspotify.SimpleTrackPage](resp)
}

// DecodeArtist reads an artist lookup response.
func DecodeArtist(resp *http.Response) (*libspotify.FullArtist, error) {
	return decode[libspotify.FullArtist](resp)
}

// DecodeTrack reads a track lookup response.
func DecodeTrack(resp *http.Response) (*libspotify.FullTrack, error) {
	return decode[libspotify.FullTrack](resp)
}

// DecodePlaylist reads a playlist lookup response.
func DecodePlaylist(resp *http.Response) (*libspotify.FullPlaylist, error) {
	return decode[libspotify.FullPlaylist](resp)
}

// DecodeSearch reads a search response. Only the pages for the requested
// types are non-nil.
func DecodeSearch(resp *http.Response) (*libspotify.SearchResult, error) {
	return decode[libspotify.SearchResult](resp)
}

// decode consumes and closes resp.Body.
func decode[T any](resp *http.Response) (*T, error) {
	if resp == nil {
		return nil, errors.New("spotify: nil response")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var body struct {
			Error libspotify.Error `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
			apiErr.Detail = &body.Error
		}
		return nil, apiErr
	}
	v := new(T)
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("decode spotify response: %w", err)
	}
	return v, nil
}
