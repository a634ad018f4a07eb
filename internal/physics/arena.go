package physics

import "iter"

// BodyHandle identifies a rigid body inside a World. The zero value never
// resolves.
type BodyHandle uint64

// ColliderHandle identifies a collider inside a World. The zero value never
// resolves.
type ColliderHandle uint64

// ForceHandle identifies a registered force generator. The zero value never
// resolves.
type ForceHandle uint64

// arena stores values in reusable slots. An id packs the slot generation in
// the high 32 bits and the slot index in the low 32 bits, so an id issued
// before a slot was freed stops resolving once the slot is reused.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

type slot[T any] struct {
	gen   uint32
	used  bool
	value T
}

func (a *arena[T]) insert(v T) uint64 {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.gen++
	s.used = true
	s.value = v
	a.live++
	return uint64(s.gen)<<32 | uint64(idx)
}

func (a *arena[T]) get(id uint64) (T, bool) {
	var zero T
	idx, gen := uint32(id), uint32(id>>32)
	if gen == 0 || int(idx) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx]
	if !s.used || s.gen != gen {
		return zero, false
	}
	return s.value, true
}

func (a *arena[T]) remove(id uint64) (T, bool) {
	var zero T
	v, ok := a.get(id)
	if !ok {
		return zero, false
	}
	idx := uint32(id)
	a.slots[idx].used = false
	a.slots[idx].value = zero
	a.free = append(a.free, idx)
	a.live--
	return v, true
}

func (a *arena[T]) len() int {
	return a.live
}

// all yields live entries in slot order.
func (a *arena[T]) all() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.used {
				continue
			}
			if !yield(uint64(s.gen)<<32|uint64(i), s.value) {
				return
			}
		}
	}
}
