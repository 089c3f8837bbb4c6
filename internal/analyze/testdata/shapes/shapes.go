package shapes

import "time"

type Status string

// Response is a plain value.
//
//autojson:deserialize
type Response struct {
	id   int64 `json:"id"`
	name string
}

type (
	// Event carries every supported shape.
	//
	//autojson:deserialize enclosing=Outer.Inner
	Event struct {
		At      time.Time     `json:"at" yaml:"at"`
		Timeout time.Duration `json:"timeout,omitempty"`
		Status  Status
		Note    *string `json:"note"`
		// Legacy counter.
		//
		// Deprecated: use Count.
		Legacy int32
		Count  uint16
		_      int
	}

	// Unmarked is ignored.
	Unmarked struct{ A int }
)

//autojson:deserialize
type Pair[T any, U any] struct {
	First  T
	Second U
}

//autojson:deserialize
type Bag struct {
	Items []string
	Meta  map[string]string
}
