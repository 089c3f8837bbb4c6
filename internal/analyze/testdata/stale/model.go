package stale

// Response had its id field renamed to ident.
//
//autojson:deserialize
type Response struct {
	ident int64 `json:"id"`
}
