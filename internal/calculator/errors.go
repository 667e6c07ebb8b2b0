package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod is returned for non-positive or inconsistent window parameters.
var ErrInvalidPeriod = errors.New("invalid indicator parameter")

func invalidPeriod(name string, period int) error {
	return fmt.Errorf("%w: %s period must be positive, got %d", ErrInvalidPeriod, name, period)
}
