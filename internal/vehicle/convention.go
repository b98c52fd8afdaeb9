package vehicle

import (
	"fmt"
	"strings"
)

// Convention names how a caller measures axial stations. Everything inside the
// engine is TailToNose: x = 0 at the tail, increasing toward the nose.
type Convention int

const (
	TailToNose Convention = iota
	NoseToTail
)

func (c Convention) String() string {
	switch c {
	case TailToNose:
		return "tail_to_nose"
	case NoseToTail:
		return "nose_to_tail"
	default:
		return fmt.Sprintf("convention(%d)", int(c))
	}
}

func ParseConvention(name string) (Convention, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", "tail_to_nose":
		return TailToNose, nil
	case "nose_to_tail":
		return NoseToTail, nil
	}
	return 0, fmt.Errorf("unknown axial convention: %s", name)
}

// ToInternal converts a station measured in c on a vehicle of totalLength into
// the tail-to-nose frame.
func (c Convention) ToInternal(x, totalLength float64) float64 {
	if c == NoseToTail {
		return totalLength - x
	}
	return x
}

// FromInternal is the inverse of ToInternal.
func (c Convention) FromInternal(x, totalLength float64) float64 {
	if c == NoseToTail {
		return totalLength - x
	}
	return x
}
