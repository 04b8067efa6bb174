package repokit

// Binder builds a repo on top of whatever Queryer the caller holds, a pool or a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// RequireQueryer panics on a nil q so wiring mistakes fail at startup instead of per request
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind is b.Bind(RequireQueryer(q))
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
