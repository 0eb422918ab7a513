// Package discovery implements the consumer-side contract of the place
// discovery screen: the permission/load state machine and the presentation
// filter and ordering applied before rendering.
package discovery

import (
	"context"
	"sort"
	"sync"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
	"github.com/pavannkulkarni/travel-companion-app/internal/geolocation"
	"github.com/pavannkulkarni/travel-companion-app/internal/places"
)

// State identifies where the discovery screen is in its lifecycle.
type State string

const (
	// StateLoading covers the initial permission check and position fix.
	StateLoading State = "loading"
	// StateDenied is the persistent full-screen error: permission denied or
	// no position available. A permission grant leaves it.
	StateDenied State = "denied"
	// StateReady means a position is held and places can be loaded.
	StateReady State = "ready"
	// StateLoadingPlaces covers an in-flight place fetch.
	StateLoadingPlaces State = "loading_places"
	// StatePlacesLoaded renders the list.
	StatePlacesLoaded State = "places_loaded"
	// StatePlacesError renders the load-error message with a retry.
	StatePlacesError State = "places_error"
)

// Fetcher is the slice of the places client the controller needs.
type Fetcher interface {
	FetchNearby(ctx context.Context, q places.Query) ([]places.Place, error)
}

// Controller drives the discovery screen's state machine.
type Controller struct {
	provider geolocation.Provider
	fetcher  Fetcher

	mu        sync.Mutex
	state     State
	position  *geolocation.Position
	placeType string
	minRating float64
	results   []places.Place
	err       error
}

// NewController builds a Controller for one discovery screen.
func NewController(provider geolocation.Provider, fetcher Fetcher, placeType string, minRating float64) *Controller {
	return &Controller{
		provider:  provider,
		fetcher:   fetcher,
		state:     StateLoading,
		placeType: placeType,
		minRating: minRating,
	}
}

// State returns the current screen state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error behind a Denied or PlacesError state.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Position returns the acquired device position, if any.
func (c *Controller) Position() *geolocation.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Init performs the permission check and position acquisition. It leaves the
// controller Ready or Denied.
func (c *Controller) Init(ctx context.Context) State {
	c.setState(StateLoading, nil)

	status, err := c.provider.Permissions(ctx)
	if err != nil {
		c.setState(StateDenied, err)
		return StateDenied
	}
	if status != geolocation.PermissionGranted {
		c.setState(StateDenied, geolocation.ErrPositionUnavailable)
		return StateDenied
	}

	return c.acquirePosition(ctx)
}

// GrantPermission prompts for permission; on a grant it re-acquires the
// position and triggers a fresh place load.
func (c *Controller) GrantPermission(ctx context.Context) State {
	status, err := c.provider.RequestPermissions(ctx)
	if err != nil || status != geolocation.PermissionGranted {
		c.setState(StateDenied, geolocation.ErrPositionUnavailable)
		return StateDenied
	}

	if st := c.acquirePosition(ctx); st != StateReady {
		return st
	}
	return c.LoadPlaces(ctx)
}

// LoadPlaces fetches places for the held position.
func (c *Controller) LoadPlaces(ctx context.Context) State {
	c.mu.Lock()
	if c.position == nil {
		c.mu.Unlock()
		return c.State()
	}
	origin := c.position.Coordinates
	placeType := c.placeType
	minRating := c.minRating
	c.state = StateLoadingPlaces
	c.err = nil
	c.mu.Unlock()

	results, err := c.fetcher.FetchNearby(ctx, places.Query{
		Coordinates: &origin,
		PlaceType:   placeType,
		MinRating:   minRating,
	})
	if err != nil {
		c.mu.Lock()
		c.state = StatePlacesError
		c.err = err
		c.mu.Unlock()
		return StatePlacesError
	}

	c.mu.Lock()
	c.state = StatePlacesLoaded
	c.results = results
	c.mu.Unlock()
	return StatePlacesLoaded
}

// Retry re-runs the step the screen is stuck on: a place load when places
// failed, the permission flow when the screen is denied.
func (c *Controller) Retry(ctx context.Context) State {
	switch c.State() {
	case StatePlacesError:
		return c.LoadPlaces(ctx)
	case StateDenied:
		return c.GrantPermission(ctx)
	default:
		return c.State()
	}
}

// SetFilter changes the place type and rating floor for subsequent loads.
func (c *Controller) SetFilter(placeType string, minRating float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.placeType = placeType
	c.minRating = minRating
}

// VisiblePlaces applies the presentation contract: only places with at least
// one image, ordered by review count descending; ties keep upstream order.
func (c *Controller) VisiblePlaces() []places.Place {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]places.Place, 0, len(c.results))
	for _, p := range c.results {
		if len(p.Images) > 0 {
			visible = append(visible, p)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ReviewCount > visible[j].ReviewCount
	})
	return visible
}

func (c *Controller) acquirePosition(ctx context.Context) State {
	coords, err := c.provider.CurrentPosition(ctx)
	if err != nil {
		c.setState(StateDenied, geolocation.ErrPositionUnavailable)
		return StateDenied
	}

	pos, err := c.provider.ReverseGeocode(ctx, coords)
	if err != nil {
		// A position without an address is still usable.
		pos = geolocation.Position{Coordinates: coords}
	}

	c.mu.Lock()
	c.position = &pos
	c.state = StateReady
	c.err = nil
	c.mu.Unlock()
	return StateReady
}

func (c *Controller) setState(s State, err error) {
	c.mu.Lock()
	c.state = s
	c.err = err
	c.mu.Unlock()
}

// FormatDistance renders a place distance for card display.
func FormatDistance(meters float64) string {
	return geo.FormatDistance(meters)
}
