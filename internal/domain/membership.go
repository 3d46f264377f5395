package domain

// Gated is implemented by content types that can be restricted to paying
// members.
type Gated interface {
	IsMemberOnly() bool
}

// FilterByMembership removes member-only entries for non-paying callers.
// For paying members it is the identity function and returns the input slice
// untouched. The caller supplies the boolean; this package knows nothing
// about the auth mechanism.
func FilterByMembership[T Gated](items []T, paidMember bool) []T {
	if paidMember {
		return items
	}

	visible := make([]T, 0, len(items))
	for _, item := range items {
		if !item.IsMemberOnly() {
			visible = append(visible, item)
		}
	}

	return visible
}
