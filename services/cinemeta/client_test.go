package cinemeta

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

func TestRating(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/meta/series/tt0903747.json" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"meta":{"id":"tt0903747","imdbRating":"9.5"}}`)),
			Header:     make(http.Header),
		}, nil
	})})

	rating, err := client.Rating(context.Background(), "series", "tt0903747")
	if err != nil {
		t.Fatalf("Rating: %v", err)
	}
	if rating != "9.5" {
		t.Fatalf("rating = %q, want 9.5", rating)
	}
}

func TestRatingMissingFieldReadsAsEmpty(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"meta":{"id":"tt0903747"}}`)),
			Header:     make(http.Header),
		}, nil
	})})

	rating, err := client.Rating(context.Background(), "series", "tt0903747")
	if err != nil {
		t.Fatalf("Rating: %v", err)
	}
	if rating != "" {
		t.Fatalf("rating = %q, want empty", rating)
	}
}

func TestRatingErrorStatus(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
			Header:     make(http.Header),
		}, nil
	})})

	if _, err := client.Rating(context.Background(), "movie", "tt0000001"); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}
