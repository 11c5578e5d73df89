package client

import "errors"

// ErrTripNotFound is returned when the trip service reports no trip for the
// given id.
var ErrTripNotFound = errors.New("trip not found")
