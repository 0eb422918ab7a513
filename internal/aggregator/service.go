// Package aggregator implements the nearby-place aggregation pipeline:
// one upstream nearby-search, a rating pre-filter, and a per-place detail
// enrichment fan-out producing normalized Place records.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
	"github.com/pavannkulkarni/travel-companion-app/internal/placesapi"
)

var (
	// ErrInvalidRequest signals missing or malformed search parameters.
	ErrInvalidRequest = errors.New("invalid search request")
	// ErrMissingAPIKey indicates the upstream credential was not provisioned.
	ErrMissingAPIKey = errors.New("places API key not configured")
)

const (
	// Food and drink venues get a tighter search radius.
	foodRadiusMeters    = 2000
	defaultRadiusMeters = 5000

	maxImagesPerPlace = 10

	defaultDetailWorkers = 8
	defaultDetailTimeout = 10 * time.Second
)

// SearchRequest fully determines one nearby-place search.
type SearchRequest struct {
	Coordinates geo.Coordinates
	PlaceType   string
	MinRating   float64
}

// Place is the unified entity returned to clients. Field names match the
// wire contract the mobile client consumes.
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
	Reviews     []placesapi.Review `json:"reviews"`
}

// Service aggregates nearby-search results with per-place details.
type Service struct {
	client        placesapi.Client
	detailWorkers int
	detailTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithDetailWorkers bounds the detail-call fan-out.
func WithDetailWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.detailWorkers = n
		}
	}
}

// WithDetailTimeout caps the duration of each individual detail call.
func WithDetailTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.detailTimeout = d
		}
	}
}

// New constructs a Service over the given places API client.
func New(client placesapi.Client, opts ...Option) *Service {
	s := &Service{
		client:        client,
		detailWorkers: defaultDetailWorkers,
		detailTimeout: defaultDetailTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RadiusFor returns the search radius in metres for a place type. Food and
// drink venues use the tighter radius; everything else the wide one.
func RadiusFor(placeType string) int {
	if strings.Contains(placeType, "restaurant") || strings.Contains(placeType, "bar") {
		return foodRadiusMeters
	}
	return defaultRadiusMeters
}

func validate(req SearchRequest) error {
	if req.PlaceType == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidRequest)
	}
	if err := req.Coordinates.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.MinRating < 0 {
		return fmt.Errorf("%w: minRating must not be negative", ErrInvalidRequest)
	}
	return nil
}

// SearchNearby runs the full pipeline for one request. The response carries
// places in upstream search order, each with up to ten photo URLs and the
// detail-derived reviews. Any detail-call failure fails the whole response.
func (s *Service) SearchNearby(ctx context.Context, req SearchRequest) ([]Place, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	radius := RadiusFor(req.PlaceType)

	results, err := s.client.NearbySearch(ctx, req.Coordinates, radius, req.PlaceType)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	// Dropping low-rated stubs here avoids detail calls for places the
	// caller will never see.
	if req.MinRating > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.Rating >= req.MinRating {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	return s.enrich(ctx, req.PlaceType, results)
}

// enrich issues one detail call per surviving stub on a bounded worker pool,
// preserving upstream order in the output.
func (s *Service) enrich(ctx context.Context, placeType string, results []placesapi.NearbyResult) ([]Place, error) {
	places := make([]Place, len(results))
	errs := make([]error, len(results))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, s.detailWorkers)
	var wg sync.WaitGroup

	for i := range results {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			place, err := s.enrichOne(ctx, placeType, results[i])
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			places[i] = place
		}(i)
	}

	wg.Wait()

	// A failing worker cancels its siblings, so some slots hold bare
	// cancellation errors. Surface the root cause instead.
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return places, nil
}

func (s *Service) enrichOne(ctx context.Context, placeType string, stub placesapi.NearbyResult) (Place, error) {
	detailCtx, cancel := context.WithTimeout(ctx, s.detailTimeout)
	defer cancel()

	details, err := s.client.PlaceDetails(detailCtx, stub.PlaceID)
	if err != nil {
		return Place{}, fmt.Errorf("place details for %s: %w", stub.PlaceID, err)
	}

	refs := details.PhotoReferences
	if len(refs) > maxImagesPerPlace {
		refs = refs[:maxImagesPerPlace]
	}
	images := make([]string, 0, len(refs))
	for _, ref := range refs {
		images = append(images, s.client.PhotoURL(ref))
	}

	fullAddress := details.FormattedAddress
	if fullAddress == "" {
		fullAddress = stub.Vicinity
	}

	reviews := details.Reviews
	if reviews == nil {
		reviews = []placesapi.Review{}
	}

	return Place{
		ID:          stub.PlaceID,
		Name:        stub.Name,
		Type:        placeType,
		Images:      images,
		Location:    stub.Vicinity,
		FullAddress: fullAddress,
		Description: stub.Vicinity,
		Rating:      stub.Rating,
		ReviewCount: stub.UserRatingsTotal,
		Latitude:    stub.Location.Latitude,
		Longitude:   stub.Location.Longitude,
		OpenNow:     stub.OpenNow,
		Reviews:     reviews,
	}, nil
}
