package apiclient

// Envelope is the backend's {data, meta} response wrapper.
type Envelope[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries collection metadata.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination describes one page of a collection response. Query layers
// replace their stored copy wholesale on every fetch.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}
