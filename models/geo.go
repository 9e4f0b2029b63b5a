package models

// Location is the result of a geolocation lookup for one peer IP.
type Location struct {
	IP      string  `json:"ip"`
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	ISP     string  `json:"isp"`
}

// MapNode is one peer prepared for map display: identity, status and
// coordinates joined from the geolocation lookup.
type MapNode struct {
	Pubkey      string     `json:"pubkey"`
	Address     string     `json:"address"`
	Status      PeerStatus `json:"status"`
	Country     string     `json:"country"`
	City        string     `json:"city,omitempty"`
	Coordinates []float64  `json:"coordinates"` // [lon, lat]
}
