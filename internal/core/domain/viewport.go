package domain

// Map-fit constants, matching the public map presentation.
const (
	SingleResultZoom = 15
	BoundsPadding    = 50
)

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the smallest box covering a set of points.
type Bounds struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// Viewport is a camera hint for the map after a search. Exactly one of
// Center or Bounds is set.
type Viewport struct {
	Center  *Point  `json:"center,omitempty"`
	Zoom    int     `json:"zoom,omitempty"`
	Bounds  *Bounds `json:"bounds,omitempty"`
	Padding int     `json:"padding,omitempty"`
}

// FitViewport computes the camera hint for a result set. A single result is
// centered tightly; multiple results get a padded bounding box; an empty set
// returns nil, meaning the camera keeps its prior view.
func FitViewport(points []Point) *Viewport {
	switch len(points) {
	case 0:
		return nil
	case 1:
		p := points[0]
		return &Viewport{Center: &p, Zoom: SingleResultZoom}
	}

	bounds := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		if p.Lat < bounds.SouthWest.Lat {
			bounds.SouthWest.Lat = p.Lat
		}
		if p.Lng < bounds.SouthWest.Lng {
			bounds.SouthWest.Lng = p.Lng
		}
		if p.Lat > bounds.NorthEast.Lat {
			bounds.NorthEast.Lat = p.Lat
		}
		if p.Lng > bounds.NorthEast.Lng {
			bounds.NorthEast.Lng = p.Lng
		}
	}

	return &Viewport{Bounds: &bounds, Padding: BoundsPadding}
}
