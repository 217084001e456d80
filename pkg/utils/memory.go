package utils

// MinCapacity is the smallest non-zero capacity handed out by GrowCapacity.
const MinCapacity = 8

// GrowCapacity returns the next capacity for a buffer currently holding
// capacity slots: the floor when below it, double otherwise.
func GrowCapacity(capacity int) int {
	return GrowCapacityFrom(capacity, MinCapacity)
}

// GrowCapacityFrom is GrowCapacity with a caller-chosen floor.
func GrowCapacityFrom(capacity, floor int) int {
	if capacity < floor {
		return floor
	}
	return capacity * 2
}

// Resize reallocates s to hold newCap elements, keeping its contents up to
// the new length. A zero newCap frees the buffer and returns nil. Requests
// the runtime cannot satisfy come back as ErrOutOfMemory.
func Resize[T any](s []T, newCap int) (out []T, err error) {
	if newCap == 0 {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, ErrOutOfMemory
		}
	}()
	n := len(s)
	if n > newCap {
		n = newCap
	}
	out = make([]T, n, newCap)
	copy(out, s)
	return out, nil
}

// Reserve makes sure s has room for one more element, growing with the
// default policy.
func Reserve[T any](s []T) ([]T, error) {
	return ReserveFrom(s, MinCapacity)
}

// ReserveFrom is Reserve with a caller-chosen floor.
func ReserveFrom[T any](s []T, floor int) ([]T, error) {
	if len(s) < cap(s) {
		return s, nil
	}
	return Resize(s, GrowCapacityFrom(cap(s), floor))
}
