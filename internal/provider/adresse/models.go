package adresse

// FeatureCollection is the GeoJSON payload returned by /search and /reverse.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Version  string    `json:"version"`
	Features []Feature `json:"features"`
	Query    string    `json:"query"`
	Limit    int       `json:"limit"`
}

type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry holds a GeoJSON point; Coordinates is [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Properties struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	HouseNumber string  `json:"housenumber"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Postcode    string  `json:"postcode"`
	CityCode    string  `json:"citycode"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	Context     string  `json:"context"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
	Street      string  `json:"street"`
	Distance    float64 `json:"distance"`
}

// First returns the best ranked feature that carries a usable point.
func (fc *FeatureCollection) First() (*Feature, bool) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, false
	}
	f := &fc.Features[0]
	if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 {
		return nil, false
	}
	return f, true
}

// Longitude of the feature point. Only valid on features returned by First.
func (f *Feature) Longitude() float64 { return f.Geometry.Coordinates[0] }

// Latitude of the feature point. Only valid on features returned by First.
func (f *Feature) Latitude() float64 { return f.Geometry.Coordinates[1] }
