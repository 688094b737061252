package repository

import "errors"

// ErrInvalidStatus is returned when an order status outside the known enum is
// requested.
var ErrInvalidStatus = errors.New("repository: invalid order status")
