package catalog

// Movie is the aggregated view: one movie info with its reviews in upstream order.
// It only exists when the movie info lookup succeeded.
type Movie struct {
	MovieInfo
	Reviews []*Review `json:"reviewList"`
}

// NewMovie never leaves Reviews nil, so it always encodes as a JSON array.
func NewMovie(info MovieInfo, reviews []*Review) *Movie {
	if reviews == nil {
		reviews = []*Review{}
	}
	return &Movie{MovieInfo: info, Reviews: reviews}
}
