package placesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailFields is the field mask requested from the details endpoint.
const detailFields = "name,rating,formatted_address,reviews,photos,opening_hours,price_level,user_ratings_total"

// GoogleClient implements the Client interface against the Google Places
// Web Service API.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// GoogleOption customizes a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithBaseURL overrides the upstream base URL. Used by tests.
func WithBaseURL(base string) GoogleOption {
	return func(c *GoogleClient) {
		c.baseURL = base
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) GoogleOption {
	return func(c *GoogleClient) {
		c.httpClient = hc
	}
}

// NewGoogleClient creates a Google Places API client.
func NewGoogleClient(apiKey string, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Google Places API response structures
type googleNearbyResponse struct {
	Status  string              `json:"status"`
	Results []googleNearbyPlace `json:"results"`
}

type googleNearbyPlace struct {
	PlaceID          string              `json:"place_id"`
	Name             string              `json:"name"`
	Vicinity         string              `json:"vicinity"`
	Rating           float64             `json:"rating"`
	UserRatingsTotal int                 `json:"user_ratings_total"`
	Geometry         googleGeometry      `json:"geometry"`
	OpeningHours     *googleOpeningHours `json:"opening_hours,omitempty"`
}

type googleGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleOpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

type googleDetailsResponse struct {
	Status string              `json:"status"`
	Result googleDetailsResult `json:"result"`
}

type googleDetailsResult struct {
	FormattedAddress string        `json:"formatted_address"`
	Reviews          []Review      `json:"reviews"`
	Photos           []googlePhoto `json:"photos"`
	PriceLevel       *int          `json:"price_level,omitempty"`
}

type googlePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

// doRequest performs a GET against an endpoint of the places API and decodes
// the JSON body into result.
func (c *GoogleClient) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	params.Set("key", c.apiKey)
	apiURL := c.baseURL + "/" + endpoint + "/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("places api error: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// NearbySearch returns place stubs within radiusMeters of coords. An upstream
// body status of ZERO_RESULTS is success with an empty result set; any status
// other than OK or ZERO_RESULTS is surfaced as a StatusError.
func (c *GoogleClient) NearbySearch(ctx context.Context, coords geo.Coordinates, radiusMeters int, placeType string) ([]NearbyResult, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%v,%v", coords.Latitude, coords.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", placeType)

	var result googleNearbyResponse
	if err := c.doRequest(ctx, "nearbysearch", params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, &StatusError{Status: result.Status}
	}

	places := make([]NearbyResult, 0, len(result.Results))
	for _, gp := range result.Results {
		var openNow *bool
		if gp.OpeningHours != nil {
			openNow = gp.OpeningHours.OpenNow
		}
		places = append(places, NearbyResult{
			PlaceID:          gp.PlaceID,
			Name:             gp.Name,
			Vicinity:         gp.Vicinity,
			Rating:           gp.Rating,
			UserRatingsTotal: gp.UserRatingsTotal,
			Location: geo.Coordinates{
				Latitude:  gp.Geometry.Location.Lat,
				Longitude: gp.Geometry.Location.Lng,
			},
			OpenNow: openNow,
		})
	}

	return places, nil
}

// PlaceDetails retrieves the detail record for a single place.
func (c *GoogleClient) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)

	var result googleDetailsResponse
	if err := c.doRequest(ctx, "details", params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" {
		return nil, &StatusError{Status: result.Status}
	}

	refs := make([]string, 0, len(result.Result.Photos))
	for _, photo := range result.Result.Photos {
		refs = append(refs, photo.PhotoReference)
	}

	return &PlaceDetails{
		FormattedAddress: result.Result.FormattedAddress,
		Reviews:          result.Result.Reviews,
		PhotoReferences:  refs,
		PriceLevel:       result.Result.PriceLevel,
	}, nil
}

// PhotoURL builds the retrieval URL for a photo reference. The image bytes
// are never fetched server-side; the URL is handed to the client as-is.
func (c *GoogleClient) PhotoURL(photoReference string) string {
	params := url.Values{}
	params.Set("maxwidth", "800")
	params.Set("photoreference", photoReference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/photo?" + params.Encode()
}
