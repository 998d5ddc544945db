package types

// Location is one entry of the cascading province/district/neighborhood pickers.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
