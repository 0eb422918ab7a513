package placesapi

import (
	"context"
	"fmt"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
)

// NearbyResult is a place stub returned by the nearby-search endpoint.
type NearbyResult struct {
	PlaceID          string
	Name             string
	Vicinity         string
	Rating           float64
	UserRatingsTotal int
	Location         geo.Coordinates
	OpenNow          *bool
}

// PlaceDetails enriches a place stub with address, reviews and photo
// references.
type PlaceDetails struct {
	FormattedAddress string
	Reviews          []Review
	PhotoReferences  []string
	PriceLevel       *int
}

// Review is a single user review attached to a place.
type Review struct {
	AuthorName              string `json:"author_name"`
	Rating                  float64 `json:"rating"`
	RelativeTimeDescription string `json:"relative_time_description"`
	Text                    string `json:"text"`
	Time                    int64  `json:"time"`
	ProfilePhotoURL         string `json:"profile_photo_url,omitempty"`
}

// StatusError reports a non-success status returned in the body of an
// upstream places API response.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("places API error: %s", e.Status)
}

// Client defines the operations the aggregation pipeline needs from an
// external places API.
type Client interface {
	// NearbySearch returns place stubs within radiusMeters of coords.
	NearbySearch(ctx context.Context, coords geo.Coordinates, radiusMeters int, placeType string) ([]NearbyResult, error)

	// PlaceDetails retrieves the detail record for a single place.
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)

	// PhotoURL builds a fully-qualified retrieval URL for a photo reference.
	PhotoURL(photoReference string) string
}
