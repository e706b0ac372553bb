package domain

import "testing"

func TestFitViewport(t *testing.T) {
	t.Run("no results keeps the prior view", func(t *testing.T) {
		if got := FitViewport(nil); got != nil {
			t.Errorf("FitViewport(nil) = %+v, want nil", got)
		}
		if got := FitViewport([]Point{}); got != nil {
			t.Errorf("FitViewport(empty) = %+v, want nil", got)
		}
	})

	t.Run("single result centers tightly", func(t *testing.T) {
		got := FitViewport([]Point{{Lat: 36.7538, Lng: 3.0588}})
		if got == nil || got.Center == nil {
			t.Fatalf("FitViewport(one) = %+v, want center", got)
		}
		if got.Center.Lat != 36.7538 || got.Center.Lng != 3.0588 {
			t.Errorf("center = %+v", got.Center)
		}
		if got.Zoom != SingleResultZoom {
			t.Errorf("zoom = %d, want %d", got.Zoom, SingleResultZoom)
		}
		if got.Bounds != nil {
			t.Errorf("bounds set for single result: %+v", got.Bounds)
		}
	})

	t.Run("multiple results get a padded bounding box", func(t *testing.T) {
		got := FitViewport([]Point{
			{Lat: 36.7538, Lng: 3.0588},
			{Lat: 35.6976, Lng: -0.6337},
			{Lat: 36.7225, Lng: 3.1572},
		})
		if got == nil || got.Bounds == nil {
			t.Fatalf("FitViewport(many) = %+v, want bounds", got)
		}
		if got.Center != nil {
			t.Errorf("center set for multiple results: %+v", got.Center)
		}
		if got.Padding != BoundsPadding {
			t.Errorf("padding = %d, want %d", got.Padding, BoundsPadding)
		}
		sw, ne := got.Bounds.SouthWest, got.Bounds.NorthEast
		if sw.Lat != 35.6976 || sw.Lng != -0.6337 {
			t.Errorf("south west = %+v", sw)
		}
		if ne.Lat != 36.7538 || ne.Lng != 3.1572 {
			t.Errorf("north east = %+v", ne)
		}
	})
}
