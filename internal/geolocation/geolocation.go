// Package geolocation abstracts the device location capability the
// discovery flow depends on: permission state, current position, and
// reverse geocoding.
package geolocation

import (
	"context"
	"errors"

	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
)

// PermissionStatus is the device's answer to a foreground location request.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// ErrPositionUnavailable indicates the device could not produce a fix.
var ErrPositionUnavailable = errors.New("could not fetch location")

// Position is a located device with optional reverse-geocoded address parts.
type Position struct {
	Coordinates geo.Coordinates
	City        string
	Region      string
	Country     string
}

// Provider supplies device coordinates and permission state.
type Provider interface {
	// Permissions returns the current foreground permission without prompting.
	Permissions(ctx context.Context) (PermissionStatus, error)

	// RequestPermissions prompts the user and returns the resulting status.
	RequestPermissions(ctx context.Context) (PermissionStatus, error)

	// CurrentPosition returns the device's current coordinates.
	CurrentPosition(ctx context.Context) (geo.Coordinates, error)

	// ReverseGeocode resolves coordinates to address parts. Implementations
	// may return a Position with only Coordinates set.
	ReverseGeocode(ctx context.Context, coords geo.Coordinates) (Position, error)
}

// StaticProvider is a Provider with fixed answers. It backs tests and the
// demo wiring where no real device capability exists.
type StaticProvider struct {
	Status   PermissionStatus
	Position Position
	Err      error
}

func (p *StaticProvider) Permissions(ctx context.Context) (PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.Status, nil
}

func (p *StaticProvider) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	return p.Permissions(ctx)
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (geo.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinates{}, err
	}
	if p.Err != nil {
		return geo.Coordinates{}, p.Err
	}
	return p.Position.Coordinates, nil
}

func (p *StaticProvider) ReverseGeocode(ctx context.Context, coords geo.Coordinates) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if p.Err != nil {
		return Position{}, p.Err
	}
	pos := p.Position
	pos.Coordinates = coords
	return pos, nil
}
