package domain

// Product identifies one of the report feeds the backend can score.
type Product string

const (
	ProductMETAR Product = "METAR"
	ProductTAF   Product = "TAF"
	ProductPIREP Product = "PIREP"
)

// PollRequest carries the caller-supplied parameters for one recurring poll.
// Top bounds match the backend's accepted range. Hours is the PIREP lookback
// window and is ignored for the other products.
type PollRequest struct {
	Product Product
	Top     int  `validate:"required,min=1,max=200"`
	Hours   int  `validate:"omitempty,min=1,max=24"`
	Conus   bool // METAR only: restrict to the continental US
}

// Row is one scored report in a snapshot. Station is unique within a
// snapshot; rank is the row's position (1-based for display). Lat and Lon are
// either both set or both nil.
type Row struct {
	Station string   `json:"station"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Text    string   `json:"text"`
}

// HasMarker reports whether the row carries a plottable coordinate pair.
func (r Row) HasMarker() bool {
	return r.Lat != nil && r.Lon != nil
}

// Snapshot is one complete result set from a single poll cycle. It is
// produced atomically and replaced wholesale; rows are never mutated in
// place. GeneratedAtUTC is the backend's own timestamp, kept as an opaque
// string and empty when the backend omitted it.
type Snapshot struct {
	Rows           []Row  `json:"rows"`
	GeneratedAtUTC string `json:"generated_at_utc,omitempty"`
}

// RadarFrame is the most recent entry from the radar provider's frame index.
// Host and Path combine into the base of a tile URL template.
type RadarFrame struct {
	Host string
	Path string
}
