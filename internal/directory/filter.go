package directory

import (
	"slices"
	"sort"
	"strings"
)

// Apply returns the participants of full that satisfy every active criterion,
// in their original order. full is never modified.
func Apply(full []Participant, c Criteria) []Participant {
	query := strings.ToLower(strings.TrimSpace(c.Name))
	out := make([]Participant, 0, len(full))
	for _, p := range full {
		if !matchesName(p, query) {
			continue
		}
		if !matchesExact(p.Region, c.Region) || !matchesExact(p.City, c.City) || !matchesExact(p.Organization, c.Organization) {
			continue
		}
		if !matchesSkill(p, c.Skill) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesName expects an already lowered and trimmed query.
func matchesName(p Participant, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query)
}

func matchesExact(field, want string) bool {
	return want == "" || field == want
}

func matchesSkill(p Participant, skill string) bool {
	return skill == "" || slices.Contains(p.Skills, skill)
}

// Selector extracts the facet values of one participant.
type Selector func(Participant) []string

// SelectorFor returns the selector for a facet. The skill selector yields the
// participant's whole skill sequence.
func SelectorFor(f Facet) Selector {
	switch f {
	case FacetRegion:
		return func(p Participant) []string { return []string{p.Region} }
	case FacetCity:
		return func(p Participant) []string { return []string{p.City} }
	case FacetOrganization:
		return func(p Participant) []string { return []string{p.Organization} }
	case FacetSkill:
		return func(p Participant) []string { return p.Skills }
	default:
		return func(p Participant) []string { return []string{p.Name} }
	}
}

// OptionsFor collects the distinct non-empty values produced by sel across
// full, sorted ascending.
func OptionsFor(full []Participant, sel Selector) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range full {
		for _, v := range sel(p) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// FacetOptions are the option lists of every selection facet.
type FacetOptions map[Facet][]string

// DeriveOptions computes the option list of every selection facet.
func DeriveOptions(full []Participant) FacetOptions {
	opts := make(FacetOptions, len(SelectFacets))
	for _, f := range SelectFacets {
		opts[f] = OptionsFor(full, SelectorFor(f))
	}
	return opts
}
