package queries

// ListGenresQuery returns the genres available for filtering: the standard
// set merged with every genre present in the catalog.
type ListGenresQuery struct{}

// Validate implements bus.Query.
func (q ListGenresQuery) Validate() error { return nil }

// GenresResult is the result of ListGenresQuery.
type GenresResult struct {
	Genres []string `json:"genres"`
}
