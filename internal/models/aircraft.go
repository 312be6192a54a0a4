package models

// Aircraft represents one aircraft state vector loaded from an OpenSky
// style CSV snapshot. Numeric fields missing from the source row are NaN
// and cause the aircraft to be skipped by the classification pass.
type Aircraft struct {
	ICAO24        string  `json:"icao24"`
	Callsign      string  `json:"callsign"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	BaroAltitudeM float64 `json:"baro_altitude"`
	VelocityMS    float64 `json:"velocity"`
	TrueTrack     float64 `json:"true_track"`
	VerticalRate  float64 `json:"vertical_rate"`
	OriginCountry string  `json:"origin_country"`
	OnGround      bool    `json:"on_ground"`
}
