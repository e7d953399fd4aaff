package geo

import "errors"

var (
	// ErrDataUnavailable is returned when neither the remote dataset nor
	// the local fallback could be loaded.
	ErrDataUnavailable = errors.New("geo.data_unavailable")
	// ErrDecodeData is returned when a dataset could not be parsed.
	ErrDecodeData = errors.New("geo.decode_data_failed")
)
