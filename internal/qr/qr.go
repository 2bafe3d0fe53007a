// Package qr builds the canonical browse URLs embedded in QR codes,
// parses scanned or typed references back to entity ids, and renders
// images through an external create-qr-code endpoint.
package qr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the public QR image service the original deployment
// used.
const DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

type Renderer struct {
	Endpoint string
	Client   *http.Client
}

func NewRenderer(endpoint string) *Renderer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Renderer{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ImageURL builds the endpoint URL that renders the payload as a
// size x size PNG.
func (r *Renderer) ImageURL(data string, size int) string {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	q.Set("bgcolor", "ffffff")
	q.Set("color", "000000")
	q.Set("margin", "20")
	return r.Endpoint + "?" + q.Encode()
}

// Fetch downloads the rendered image bytes for the payload.
func (r *Renderer) Fetch(ctx context.Context, data string, size int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.ImageURL(data, size), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch qr image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr endpoint returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// StoreURL is the canonical browse URL for a store.
func StoreURL(origin, storeID string) string {
	return strings.TrimRight(origin, "/") + "/store/" + storeID
}

// ProductURL is the canonical browse URL for a listing.
func ProductURL(origin, productID string) string {
	return strings.TrimRight(origin, "/") + "/product/" + productID
}

// ParseStoreRef extracts a store id from a scanned or typed reference:
// either a bare id or any URL containing /store/<id>.
func ParseStoreRef(input string) string {
	return parseRef(input, "/store/")
}

// ParseProductRef extracts a product id from a bare id or any URL
// containing /product/<id>.
func ParseProductRef(input string) string {
	return parseRef(input, "/product/")
}

func parseRef(input, marker string) string {
	input = strings.TrimSpace(input)
	if i := strings.LastIndex(input, marker); i >= 0 {
		input = input[i+len(marker):]
		if j := strings.IndexAny(input, "/?#"); j >= 0 {
			input = input[:j]
		}
	}
	return input
}
