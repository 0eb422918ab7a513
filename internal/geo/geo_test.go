package geo

import (
	"math"
	"testing"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		coords  Coordinates
		wantErr bool
	}{
		{name: "bengaluru", coords: Coordinates{Latitude: 12.97, Longitude: 77.59}},
		{name: "null island", coords: Coordinates{Latitude: 0, Longitude: 0}},
		{name: "poles", coords: Coordinates{Latitude: 90, Longitude: -180}},
		{name: "latitude too big", coords: Coordinates{Latitude: 90.5, Longitude: 0}, wantErr: true},
		{name: "latitude too small", coords: Coordinates{Latitude: -91, Longitude: 0}, wantErr: true},
		{name: "longitude too big", coords: Coordinates{Latitude: 0, Longitude: 181}, wantErr: true},
		{name: "longitude too small", coords: Coordinates{Latitude: 0, Longitude: -180.01}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coords.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	// Lalbagh Botanical Garden to Bengaluru Palace, roughly 7.7 km.
	lalbagh := Coordinates{Latitude: 12.9507, Longitude: 77.5848}
	palace := Coordinates{Latitude: 13.0199, Longitude: 77.5921}

	got := Distance(lalbagh, palace)
	if got < 7500 || got > 7900 {
		t.Fatalf("expected roughly 7.7km, got %.0fm", got)
	}

	if d := Distance(lalbagh, lalbagh); d != 0 {
		t.Fatalf("expected zero distance to self, got %v", d)
	}

	// Symmetry.
	if a, b := Distance(lalbagh, palace), Distance(palace, lalbagh); math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{450, "450m"},
		{999, "999m"},
		{999.4, "999m"},
		{999.5, "1.0km"},
		{1000, "1.0km"},
		{1500, "1.5km"},
		{12345, "12.3km"},
	}

	for _, tc := range tests {
		if got := FormatDistance(tc.meters); got != tc.want {
			t.Fatalf("FormatDistance(%v) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}
