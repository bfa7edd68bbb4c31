package stego

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when the header plus message bits do not fit the image
	ErrCapacityExceeded = errors.New("message exceeds image capacity")

	// ErrInvalidEncoding is returned when the recovered bytes are not valid UTF-8
	ErrInvalidEncoding = errors.New("extracted message is not valid UTF-8")

	// ErrBoundsExhausted is returned when the image ends before the declared payload does
	ErrBoundsExhausted = errors.New("image exhausted before declared payload length")

	// ErrInvalidImage is returned for a nil image or one with no pixels
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnalignedBits is returned when a bit sequence does not end on a byte boundary
	ErrUnalignedBits = errors.New("bit sequence is not a multiple of 8")
)

// CapacityError reports how many bits an Embed call needed and how many the image offers.
type CapacityError struct {
	Required  uint64
	Available uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: required %d bits, available %d bits", ErrCapacityExceeded, e.Required, e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// BoundsError reports a header that claims more payload bits than the image holds.
type BoundsError struct {
	Declared  uint64
	Available uint64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: header declares %d bits, image holds %d", ErrBoundsExhausted, e.Declared, e.Available)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrBoundsExhausted
}
