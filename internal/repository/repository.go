package repository

import "errors"

// ErrStoreUnavailable is returned when no database pool was configured.
var ErrStoreUnavailable = errors.New("repository: store not configured")
