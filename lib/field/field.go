// Package field provides a three-state optional value used by the page
// extractors. A field scraped off a page is either Present (the label was
// found and carried a value), Absent (the label or value was not found), or
// NotApplicable (the source explicitly has no value for it, e.g. a program
// listing that carries no numeric grade).
//
// Absent and NotApplicable are deliberately distinct: Absent feeds into
// incomplete-record handling, NotApplicable does not.
package field

type State int

const (
	StateAbsent State = iota
	StatePresent
	StateNotApplicable
)

type Field[T any] struct {
	state State
	value T
}

func Present[T any](value T) Field[T] {
	return Field[T]{state: StatePresent, value: value}
}

func Absent[T any]() Field[T] {
	return Field[T]{state: StateAbsent}
}

func NotApplicable[T any]() Field[T] {
	return Field[T]{state: StateNotApplicable}
}

func (f Field[T]) State() State {
	return f.state
}

func (f Field[T]) IsPresent() bool {
	return f.state == StatePresent
}

func (f Field[T]) IsAbsent() bool {
	return f.state == StateAbsent
}

func (f Field[T]) IsNotApplicable() bool {
	return f.state == StateNotApplicable
}

// Value returns the contained value and whether it is Present.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == StatePresent
}

// Or returns the contained value if Present, otherwise fallback.
func (f Field[T]) Or(fallback T) T {
	if f.state == StatePresent {
		return f.value
	}
	return fallback
}
