package domain

// Coalesce returns the first non-zero value in vals.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// Deref returns the value behind the first non-nil pointer, or fallback.
func Deref[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// IntPtr returns a pointer to v, for optional day numbers on issues.
func IntPtr(v int) *int {
	return &v
}
