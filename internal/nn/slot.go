package nn

// slot is a buffer with an explicit unset/set lifecycle.
//
// Every cached tensor (last input, output, gradients) lives in a slot so that
// reading it before its producer ran fails with ErrUnsetState instead of
// returning stale or zero data.
type slot[T any] struct {
	value T
	set   bool
}

// put stores v and marks the slot as computed.
func (s *slot[T]) put(v T) {
	s.value = v
	s.set = true
}

// get returns the stored value, or a StateError naming component and buffer.
func (s *slot[T]) get(component, name string) (T, error) {
	if !s.set {
		var zero T
		return zero, &StateError{Component: component, Slot: name}
	}
	return s.value, nil
}

// clear returns the slot to the unset state.
func (s *slot[T]) clear() {
	var zero T
	s.value = zero
	s.set = false
}
