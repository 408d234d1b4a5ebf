package request

import "errors"

// ErrInternalServer is the generic message returned to the client when a
// handler panics or fails unexpectedly.
var ErrInternalServer = errors.New("internal server error")
