package tshock

import (
	"errors"
	"fmt"
)

// Token-level errors. ParseItemOrEmpty downgrades all of them to an empty slot.
var (
	ErrMalformedToken = errors.New("malformed item token")
	ErrUnknownItem    = errors.New("unknown item id")
	ErrPrefix         = errors.New("malformed item prefix")
)

// Structural errors. These abort assembly of the whole player.
var (
	ErrRegionOutOfRange = errors.New("region out of range")
	ErrMissingField     = errors.New("missing required field")
)

// RegionError reports a region that does not fit in the decoded inventory.
type RegionError struct {
	Region string
	Need   int
	Have   int
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %q needs %d slots, inventory has %d", e.Region, e.Need, e.Have)
}

// Unwrap makes errors.Is(err, ErrRegionOutOfRange) hold.
func (e *RegionError) Unwrap() error { return ErrRegionOutOfRange }

// MissingFieldError reports an absent required column.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Unwrap makes errors.Is(err, ErrMissingField) hold.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
