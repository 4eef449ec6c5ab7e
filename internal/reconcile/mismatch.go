package reconcile

import (
	"sort"

	"portops/internal/domain"
)

// DeclarationSet is a set of carrier declaration numbers (tkNhaVC).
type DeclarationSet map[string]struct{}

// Has reports whether declaration is in the set.
func (s DeclarationSet) Has(declaration string) bool {
	_, ok := s[declaration]
	return ok
}

// Sorted returns the declaration numbers in ascending order.
func (s DeclarationSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// QuantityMismatch reports whether a container's customs-declared quantities
// disagree with its manifest quantities. A missing customs value is undecided,
// not wrong.
func QuantityMismatch(c *domain.Container) bool {
	if c.CustomsPkgs != nil && *c.CustomsPkgs != float64(c.Pkgs) {
		return true
	}
	if c.CustomsWeight != nil && *c.CustomsWeight != c.Weight {
		return true
	}
	return false
}

// DetectMismatchedDeclarations returns every declaration number with at least
// one member container whose customs quantities disagree with its manifest.
// Containers without a declaration number contribute nothing.
func DetectMismatchedDeclarations(containers []domain.Container) DeclarationSet {
	set := make(DeclarationSet)
	for i := range containers {
		c := &containers[i]
		if c.TkNhaVC != "" && QuantityMismatch(c) {
			set[c.TkNhaVC] = struct{}{}
		}
	}
	return set
}

// IsContainerMismatched reports whether c belongs to a mismatched declaration
// group, whether or not its own numbers agree.
func IsContainerMismatched(c *domain.Container, mismatched DeclarationSet) bool {
	return c.TkNhaVC != "" && mismatched.Has(c.TkNhaVC)
}

// EffectiveStatus is the status shown to users: MISMATCH overrides the stored
// status for every member of a mismatched declaration group. The stored
// status is never modified.
func EffectiveStatus(c *domain.Container, mismatched DeclarationSet) domain.ContainerStatus {
	if IsContainerMismatched(c, mismatched) {
		return domain.ContainerStatusMismatch
	}
	return c.Status
}

// Warnings collects containers in mismatched declaration groups and those
// still waiting on the operator's declaration (no tkDnlOla, not COMPLETED).
func Warnings(containers []domain.Container, mismatched DeclarationSet) domain.DeclarationWarnings {
	w := domain.DeclarationWarnings{
		Mismatches:          []domain.Container{},
		PendingDeclarations: []domain.Container{},
	}
	for i := range containers {
		c := &containers[i]
		if IsContainerMismatched(c, mismatched) {
			w.Mismatches = append(w.Mismatches, *c)
		}
		if c.TkDnlOla == "" && c.Status != domain.ContainerStatusCompleted {
			w.PendingDeclarations = append(w.PendingDeclarations, *c)
		}
	}
	return w
}
