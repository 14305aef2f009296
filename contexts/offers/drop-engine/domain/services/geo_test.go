package services

import (
	"math"
	"testing"
)

func TestDistanceMetersKnownPoints(t *testing.T) {
	// One degree of latitude along a meridian.
	got := DistanceMeters(0, 0, 1, 0)
	want := 2 * math.Pi * EarthRadiusMeters / 360
	if math.Abs(got-want) > 1 {
		t.Fatalf("expected ~%.1f meters, got %.1f", want, got)
	}
}

func TestDistanceMetersZero(t *testing.T) {
	if got := DistanceMeters(40.7128, -74.006, 40.7128, -74.006); got != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", got)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	ab := DistanceMeters(40.7128, -74.006, 34.0522, -118.2437)
	ba := DistanceMeters(34.0522, -118.2437, 40.7128, -74.006)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("expected symmetric distance, got %f and %f", ab, ba)
	}
	// NYC to LA is roughly 3940 km.
	if ab < 3_900_000 || ab > 4_000_000 {
		t.Fatalf("NYC to LA distance out of expected range: %f", ab)
	}
}

func TestEffectiveRadiusFallsBackToDefault(t *testing.T) {
	if got := EffectiveRadius(0); got != DefaultRadiusMeters {
		t.Fatalf("expected default radius for zero, got %f", got)
	}
	if got := EffectiveRadius(-5); got != DefaultRadiusMeters {
		t.Fatalf("expected default radius for negative, got %f", got)
	}
	if got := EffectiveRadius(250); got != 250 {
		t.Fatalf("expected explicit radius preserved, got %f", got)
	}
}

func TestWithinRadius(t *testing.T) {
	// ~111 meters north of the center.
	if !WithinRadius(40.7138, -74.006, 40.7128, -74.006, 200) {
		t.Fatal("expected point inside 200m radius")
	}
	if WithinRadius(40.7228, -74.006, 40.7128, -74.006, 200) {
		t.Fatal("expected point outside 200m radius")
	}
	// Zero radius means the default, not an empty fence.
	if !WithinRadius(40.7138, -74.006, 40.7128, -74.006, 0) {
		t.Fatal("expected default radius to admit a nearby point")
	}
}
