package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
	"github.com/pavannkulkarni/travel-companion-app/internal/geolocation"
	"github.com/pavannkulkarni/travel-companion-app/internal/places"
)

type stubFetcher struct {
	results []places.Place
	err     error

	calls     int
	lastQuery places.Query
}

func (s *stubFetcher) FetchNearby(ctx context.Context, q places.Query) ([]places.Place, error) {
	s.calls++
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func grantedProvider() *geolocation.StaticProvider {
	return &geolocation.StaticProvider{
		Status: geolocation.PermissionGranted,
		Position: geolocation.Position{
			Coordinates: geo.Coordinates{Latitude: 12.97, Longitude: 77.59},
			City:        "Bengaluru",
		},
	}
}

func TestInitGranted(t *testing.T) {
	c := NewController(grantedProvider(), &stubFetcher{}, "tourist_attraction", 4.0)

	if st := c.Init(context.Background()); st != StateReady {
		t.Fatalf("expected StateReady, got %v", st)
	}
	pos := c.Position()
	if pos == nil || pos.City != "Bengaluru" {
		t.Fatalf("expected reverse-geocoded position, got %#v", pos)
	}
}

func TestInitDenied(t *testing.T) {
	provider := &geolocation.StaticProvider{Status: geolocation.PermissionDenied}
	c := NewController(provider, &stubFetcher{}, "tourist_attraction", 0)

	if st := c.Init(context.Background()); st != StateDenied {
		t.Fatalf("expected StateDenied, got %v", st)
	}
	if c.Err() == nil {
		t.Fatalf("expected error behind denied state")
	}
}

func TestInitPositionFailure(t *testing.T) {
	provider := &geolocation.StaticProvider{
		Status: geolocation.PermissionGranted,
		Err:    errors.New("gps unavailable"),
	}
	c := NewController(provider, &stubFetcher{}, "cafe", 0)

	if st := c.Init(context.Background()); st != StateDenied {
		t.Fatalf("expected StateDenied on position failure, got %v", st)
	}
	if !errors.Is(c.Err(), geolocation.ErrPositionUnavailable) {
		t.Fatalf("expected ErrPositionUnavailable, got %v", c.Err())
	}
}

func TestLoadPlacesSuccess(t *testing.T) {
	fetcher := &stubFetcher{
		results: []places.Place{{ID: "p1", Images: []string{"img"}}},
	}
	c := NewController(grantedProvider(), fetcher, "tourist_attraction", 4.0)
	c.Init(context.Background())

	if st := c.LoadPlaces(context.Background()); st != StatePlacesLoaded {
		t.Fatalf("expected StatePlacesLoaded, got %v", st)
	}
	if fetcher.lastQuery.Coordinates == nil || fetcher.lastQuery.Coordinates.Latitude != 12.97 {
		t.Fatalf("expected query origin from position, got %#v", fetcher.lastQuery.Coordinates)
	}
	if fetcher.lastQuery.PlaceType != "tourist_attraction" || fetcher.lastQuery.MinRating != 4.0 {
		t.Fatalf("unexpected query: %#v", fetcher.lastQuery)
	}
}

func TestLoadPlacesError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	c := NewController(grantedProvider(), fetcher, "cafe", 0)
	c.Init(context.Background())

	if st := c.LoadPlaces(context.Background()); st != StatePlacesError {
		t.Fatalf("expected StatePlacesError, got %v", st)
	}
	if c.Err() == nil {
		t.Fatalf("expected load error recorded")
	}
}

func TestGrantPermissionTriggersLoad(t *testing.T) {
	provider := &geolocation.StaticProvider{Status: geolocation.PermissionDenied}
	fetcher := &stubFetcher{results: []places.Place{}}
	c := NewController(provider, fetcher, "cafe", 0)

	if st := c.Init(context.Background()); st != StateDenied {
		t.Fatalf("expected StateDenied, got %v", st)
	}

	// The user flips the permission; a grant must load places immediately.
	provider.Status = geolocation.PermissionGranted
	provider.Position = geolocation.Position{Coordinates: geo.Coordinates{Latitude: 1, Longitude: 2}}

	if st := c.GrantPermission(context.Background()); st != StatePlacesLoaded {
		t.Fatalf("expected StatePlacesLoaded after grant, got %v", st)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch after grant, got %d", fetcher.calls)
	}
}

func TestRetryAfterPlacesError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("transient")}
	c := NewController(grantedProvider(), fetcher, "cafe", 0)
	c.Init(context.Background())
	c.LoadPlaces(context.Background())

	fetcher.err = nil
	fetcher.results = []places.Place{}

	if st := c.Retry(context.Background()); st != StatePlacesLoaded {
		t.Fatalf("expected StatePlacesLoaded after retry, got %v", st)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected two fetches, got %d", fetcher.calls)
	}
}

func TestVisiblePlacesFilterAndOrder(t *testing.T) {
	fetcher := &stubFetcher{
		results: []places.Place{
			{ID: "no-photos", ReviewCount: 9999},
			{ID: "mid", ReviewCount: 500, Images: []string{"a"}},
			{ID: "top", ReviewCount: 1200, Images: []string{"a", "b"}},
			{ID: "tie-first", ReviewCount: 500, Images: []string{"a"}},
		},
	}
	c := NewController(grantedProvider(), fetcher, "tourist_attraction", 0)
	c.Init(context.Background())
	c.LoadPlaces(context.Background())

	visible := c.VisiblePlaces()
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible places, got %d", len(visible))
	}
	if visible[0].ID != "top" {
		t.Fatalf("expected 'top' first, got %q", visible[0].ID)
	}
	// Equal review counts keep upstream order.
	if visible[1].ID != "mid" || visible[2].ID != "tie-first" {
		t.Fatalf("tie order not stable: %q, %q", visible[1].ID, visible[2].ID)
	}
}
