package agn

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by errors.Is for any *OutOfRangeError.
var ErrOutOfRange = errors.New("viewing angle out of range")

// OutOfRangeError reports an angle outside [MinAngle, MaxAngle].
type OutOfRangeError struct {
	Angle int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("viewing angle %d out of range [%d, %d]", e.Angle, MinAngle, MaxAngle)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// UnknownArchetypeError signals an archetype value outside the declared
// set. It is raised with panic: it means the classifier table and a
// lookup table disagree, which is a programming error.
type UnknownArchetypeError struct {
	Value int
}

func (e *UnknownArchetypeError) Error() string {
	return fmt.Sprintf("unknown archetype %d", e.Value)
}
