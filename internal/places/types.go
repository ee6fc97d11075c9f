package places

// Types in this file mirror the provider's wire format. Decoding is tolerant:
// any field may be absent in a response, so nested objects are pointers and a
// missing results array decodes to a nil slice.

// SearchResponse is the body of a nearby or text search.
type SearchResponse struct {
	Status  string  `json:"status"`
	Results []Place `json:"results"`
}

// Place is one raw search result. Geometry may be nil on malformed entries.
type Place struct {
	PlaceID  string    `json:"place_id"`
	Name     string    `json:"name"`
	Vicinity string    `json:"vicinity"`
	Geometry *Geometry `json:"geometry"`
}

type Geometry struct {
	Location *LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DetailsResponse is the body of a place-details lookup.
type DetailsResponse struct {
	Status string        `json:"status"`
	Result *PlaceDetails `json:"result"`
}

type PlaceDetails struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Geometry         *Geometry     `json:"geometry"`
	PhoneNumber      string        `json:"formatted_phone_number,omitempty"`
	Website          string        `json:"website,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// ReviewsResponse is the body of a reviews lookup.
type ReviewsResponse struct {
	Status string         `json:"status"`
	Result *ReviewsResult `json:"result"`
}

type ReviewsResult struct {
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Reviews          []Review `json:"reviews"`
}

type Review struct {
	AuthorName string  `json:"author_name"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	Time       int64   `json:"time"`
}

// NotFound reports whether a details-style status means the place id does not
// exist at the provider.
func NotFound(status string) bool {
	return status == "NOT_FOUND" || status == "INVALID_REQUEST"
}
