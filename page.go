package relq

// Page is the result of one paginated query pair: the count query fills
// TotalItems and TotalPages, the data query fills Items. CurrentPage is
// 1-based; the last page may be partial.
type Page[T any] struct {
	CurrentPage int
	PageSize    int
	TotalItems  int64
	TotalPages  int64
	Items       []T
}
