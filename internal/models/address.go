package models

// Address is a named geographic point stored in the addresses table.
type Address struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewAddress carries the fields of an address that has not been stored yet.
type NewAddress struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// AddressUpdate is a partial update. A nil field keeps the stored value.
type AddressUpdate struct {
	Name      *string
	Latitude  *float64
	Longitude *float64
}

// IsEmpty reports whether the update carries no fields at all.
func (u AddressUpdate) IsEmpty() bool {
	return u.Name == nil && u.Latitude == nil && u.Longitude == nil
}

// Coordinate is a WGS 84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the position of the address.
func (a Address) Coordinate() Coordinate {
	return Coordinate{Latitude: a.Latitude, Longitude: a.Longitude}
}

// ProximityQuery selects addresses within Distance meters of Center.
type ProximityQuery struct {
	Center   Coordinate
	Distance float64
}
