// Package places is the client half of the discovery pipeline: it calls the
// aggregation endpoint and post-processes the response for presentation.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
	"github.com/pavannkulkarni/travel-companion-app/internal/placesapi"
)

var (
	// ErrInvalidCoordinates signals a missing or out-of-range search origin.
	ErrInvalidCoordinates = errors.New("invalid coordinates provided")
	// ErrConnectivity indicates the aggregation endpoint could not be reached.
	ErrConnectivity = errors.New("unable to connect to the places service; check your internet connection and try again")
	// ErrMalformedResponse signals a response body of an unexpected shape.
	ErrMalformedResponse = errors.New("invalid response format from places API")
)

// Query describes one nearby-place fetch. Coordinates is a pointer so a
// missing origin is distinguishable from a genuine 0,0 coordinate.
type Query struct {
	Coordinates *geo.Coordinates
	PlaceType   string
	MinRating   float64
}

// Place is a fetched place enriched with client-side fields.
type Place struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Images      []string           `json:"images"`
	Location    string             `json:"location"`
	FullAddress string             `json:"fullAddress"`
	Description string             `json:"description"`
	Rating      float64            `json:"rating"`
	ReviewCount int                `json:"reviewCount"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	OpenNow     *bool              `json:"openNow,omitempty"`
	Distance    float64            `json:"distance"`
	Reviews     []placesapi.Review `json:"reviews"`
}

// Client fetches places from the aggregation endpoint.
type Client struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a Client for the aggregation endpoint at baseURL,
// authorizing every request with bearerToken.
func NewClient(baseURL, bearerToken string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		bearerToken: bearerToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchNearby requests nearby places and post-processes each result:
// distance from the query origin, address fallback, and a non-nil reviews
// slice.
func (c *Client) FetchNearby(ctx context.Context, q Query) ([]Place, error) {
	if q.Coordinates == nil {
		return nil, ErrInvalidCoordinates
	}
	if err := q.Coordinates.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%v", q.Coordinates.Latitude))
	params.Set("longitude", fmt.Sprintf("%v", q.Coordinates.Longitude))
	params.Set("type", q.PlaceType)
	params.Set("minRating", fmt.Sprintf("%v", q.MinRating))

	reqURL := c.baseURL + "/places?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && !urlErr.Timeout() && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
		return nil, fmt.Errorf("fetch nearby places: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("places request failed: status %d, message: %s", resp.StatusCode, string(body))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var fetched []Place
		if err := json.Unmarshal(trimmed, &fetched); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return postProcess(fetched, *q.Coordinates), nil
	}

	// Not an array; an object body may still carry a server error message.
	var errBody struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &errBody); err == nil && errBody.Error != nil {
		return nil, errors.New(*errBody.Error)
	}

	return nil, ErrMalformedResponse
}

func postProcess(fetched []Place, origin geo.Coordinates) []Place {
	out := make([]Place, 0, len(fetched))
	for _, p := range fetched {
		p.Distance = geo.Distance(origin, geo.Coordinates{Latitude: p.Latitude, Longitude: p.Longitude})
		if p.FullAddress == "" {
			p.FullAddress = p.Location
		}
		if p.Reviews == nil {
			p.Reviews = []placesapi.Review{}
		}
		out = append(out, p)
	}
	return out
}
