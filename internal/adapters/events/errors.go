package events

import (
	"errors"
)

// ErrHubClosed is returned by Subscribe after the hub has shut down
var ErrHubClosed = errors.New("broadcast hub closed")
