package event

// Filter combinators for subscription predicates.

// FilterAnd combines multiple filters with AND logic.
// All filters must pass for the event to be delivered.
func FilterAnd[E any](filters ...FilterFunc[E]) FilterFunc[E] {
	return func(e E) bool {
		for _, f := range filters {
			if !f(e) {
				return false
			}
		}
		return true
	}
}

// FilterOr combines multiple filters with OR logic.
// At least one filter must pass for the event to be delivered.
func FilterOr[E any](filters ...FilterFunc[E]) FilterFunc[E] {
	return func(e E) bool {
		for _, f := range filters {
			if f(e) {
				return true
			}
		}
		return false
	}
}

// FilterNot negates a filter.
func FilterNot[E any](filter FilterFunc[E]) FilterFunc[E] {
	return func(e E) bool {
		return !filter(e)
	}
}

// FilterAll allows all events (no filtering).
func FilterAll[E any]() FilterFunc[E] {
	return func(E) bool {
		return true
	}
}

// FilterNone blocks all events.
func FilterNone[E any]() FilterFunc[E] {
	return func(E) bool {
		return false
	}
}
