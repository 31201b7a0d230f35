package directory

import "fmt"

// Facet names one filterable participant attribute.
type Facet string

const (
	FacetName         Facet = "name"
	FacetRegion       Facet = "region"
	FacetCity         Facet = "city"
	FacetOrganization Facet = "organization"
	FacetSkill        Facet = "skill"
)

// SelectFacets are the facets offered as single-selection controls, in display order.
var SelectFacets = []Facet{FacetRegion, FacetCity, FacetOrganization, FacetSkill}

// Label is the human-readable facet name.
func (f Facet) Label() string {
	switch f {
	case FacetName:
		return "Name"
	case FacetRegion:
		return "Region"
	case FacetCity:
		return "City"
	case FacetOrganization:
		return "Organization"
	case FacetSkill:
		return "Skill"
	default:
		return string(f)
	}
}

// Criteria holds one value per facet. An empty value places no restriction on
// that facet; active facets combine with AND.
type Criteria struct {
	Name         string
	Region       string
	City         string
	Organization string
	Skill        string
}

// Get returns the current value for facet.
func (c Criteria) Get(f Facet) string {
	switch f {
	case FacetName:
		return c.Name
	case FacetRegion:
		return c.Region
	case FacetCity:
		return c.City
	case FacetOrganization:
		return c.Organization
	case FacetSkill:
		return c.Skill
	default:
		return ""
	}
}

// With returns a copy of c with facet set to value.
func (c Criteria) With(f Facet, value string) (Criteria, error) {
	switch f {
	case FacetName:
		c.Name = value
	case FacetRegion:
		c.Region = value
	case FacetCity:
		c.City = value
	case FacetOrganization:
		c.Organization = value
	case FacetSkill:
		c.Skill = value
	default:
		return c, fmt.Errorf("unknown facet %q", f)
	}
	return c, nil
}

// IsZero reports whether no facet is restricted.
func (c Criteria) IsZero() bool { return c == Criteria{} }
