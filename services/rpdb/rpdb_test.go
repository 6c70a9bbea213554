package rpdb

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestPosterURL(t *testing.T) {
	got := PosterURL("k123", "movie", "550", "pt-BR")
	want := "https://api.ratingposterdb.com/k123/tmdb/poster-default/movie-550.jpg?fallback=true&lang=pt"
	if got != want {
		t.Fatalf("PosterURL = %q, want %q", got, want)
	}

	// Bare language codes pass through untouched.
	got = PosterURL("k123", "series", "1396", "en")
	want = "https://api.ratingposterdb.com/k123/tmdb/poster-default/series-1396.jpg?fallback=true&lang=en"
	if got != want {
		t.Fatalf("PosterURL = %q, want %q", got, want)
	}
}

func TestExists(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodHead {
			t.Fatalf("method = %s, want HEAD", req.Method)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBuffer(nil)),
			Header:     make(http.Header),
		}, nil
	})})
	if !client.Exists(context.Background(), "https://api.ratingposterdb.com/k/tmdb/poster-default/movie-550.jpg") {
		t.Fatal("200 should read as present")
	}

	client = NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBuffer(nil)),
			Header:     make(http.Header),
		}, nil
	})})
	if client.Exists(context.Background(), "https://api.ratingposterdb.com/k/tmdb/poster-default/movie-550.jpg") {
		t.Fatal("404 should read as absent")
	}
}
