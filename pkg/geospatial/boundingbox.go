package geospatial

type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

func (b BoundingBox) Pad(degrees float64) BoundingBox {
	return BoundingBox{
		MinLat: b.MinLat - degrees,
		MinLon: b.MinLon - degrees,
		MaxLat: b.MaxLat + degrees,
		MaxLon: b.MaxLon + degrees,
	}
}

// PathBoundingBox returns the box enclosing every usable point of a flat
// longitude,latitude sequence. ok is false when no point parses.
func PathBoundingBox(path []float64) (BoundingBox, bool) {
	points := PathPoints(path)
	if len(points) == 0 {
		return BoundingBox{}, false
	}

	box := BoundingBox{
		MinLat: points[0][1],
		MinLon: points[0][0],
		MaxLat: points[0][1],
		MaxLon: points[0][0],
	}

	for _, point := range points[1:] {
		if point[1] < box.MinLat {
			box.MinLat = point[1]
		}
		if point[1] > box.MaxLat {
			box.MaxLat = point[1]
		}
		if point[0] < box.MinLon {
			box.MinLon = point[0]
		}
		if point[0] > box.MaxLon {
			box.MaxLon = point[0]
		}
	}

	return box, true
}
