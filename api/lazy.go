package api

// lazy memoizes the first result of a computation, error included.
// Not safe for concurrent use.
type lazy[T any] struct {
	done bool
	val  T
	err  error
}

func (l *lazy[T]) get(compute func() (T, error)) (T, error) {
	if !l.done {
		l.val, l.err = compute()
		l.done = true
	}
	return l.val, l.err
}
