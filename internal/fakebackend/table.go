package fakebackend

import "github.com/wolfman30/dental-clinic-client/internal/clinic"

// table is an ordered in-memory collection keyed by id. It is not
// synchronized; Backend.mu guards every table.
type table[T any] struct {
	noun string
	rows []T
	key  func(*T) *clinic.ID
}

func newTable[T any](noun string, key func(*T) *clinic.ID) *table[T] {
	return &table[T]{noun: noun, key: key}
}

func (t *table[T]) notFound() string {
	return t.noun + " not found"
}

func (t *table[T]) all() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *table[T]) where(keep func(T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) index(id clinic.ID) int {
	for i := range t.rows {
		if *t.key(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id clinic.ID) (T, bool) {
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

func (t *table[T]) has(id clinic.ID) bool {
	return t.index(id) >= 0
}

func (t *table[T]) insert(v T, id clinic.ID) T {
	*t.key(&v) = id
	t.rows = append(t.rows, v)
	return v
}

// put replaces the row with v's id. It reports false when no such row exists.
func (t *table[T]) put(v T) bool {
	i := t.index(*t.key(&v))
	if i < 0 {
		return false
	}
	t.rows[i] = v
	return true
}

func (t *table[T]) delete(id clinic.ID) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}
