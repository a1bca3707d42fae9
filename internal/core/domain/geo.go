package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ResolvedLocation is the outcome of resolving a free-text commune name:
// the wilaya the place belongs to, a coordinate, and a display address.
// It is embedded into imported stores, never persisted on its own.
type ResolvedLocation struct {
	Wilaya   string
	Location GeoPoint
	Address  string
}
