package packages

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// FilterCriteria selects active packages. Unset fields do not constrain the result.
type FilterCriteria struct {
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	MinCapacity *int             `json:"min_capacity,omitempty"`
	MaxCapacity *int             `json:"max_capacity,omitempty"`
	Tiers       []Tier           `json:"tiers,omitempty"`
	VenueTypes  []string         `json:"venue_types,omitempty"`
	SearchTerm  string           `json:"search_term,omitempty"`
}

// NormalizedTerm is the search term as it is compared: trimmed and lower-cased
func (c FilterCriteria) NormalizedTerm() string {
	return strings.ToLower(strings.TrimSpace(c.SearchTerm))
}

// Matches applies every predicate to p. Range predicates are inclusive.
// The search term matches when any text field of the package, its venue or its services contains it.
func (c FilterCriteria) Matches(p *VenuePackage) bool {
	if c.MinPrice != nil && p.BasePrice.LessThan(*c.MinPrice) {
		return false
	}
	if c.MaxPrice != nil && p.BasePrice.GreaterThan(*c.MaxPrice) {
		return false
	}
	if c.MinCapacity != nil && p.BaseCapacity < *c.MinCapacity {
		return false
	}
	if c.MaxCapacity != nil && p.BaseCapacity > *c.MaxCapacity {
		return false
	}
	if len(c.Tiers) > 0 && !slices.Contains(c.Tiers, p.Tier) {
		return false
	}
	if len(c.VenueTypes) > 0 {
		if p.Venue == nil || p.Venue.Type == "" || !slices.Contains(c.VenueTypes, p.Venue.Type) {
			return false
		}
	}
	if term := c.NormalizedTerm(); term != "" && !matchesTerm(p, term) {
		return false
	}
	return true
}

func matchesTerm(p *VenuePackage, term string) bool {
	if containsFold(p.Name, term) || containsFold(p.Description, term) {
		return true
	}
	if p.Venue != nil && (containsFold(p.Venue.Name, term) || containsFold(p.Venue.Type, term)) {
		return true
	}
	for i := range p.Services {
		if containsFold(p.Services[i].Name, term) || containsFold(p.Services[i].Description, term) {
			return true
		}
	}
	return false
}

// term must already be lower-case
func containsFold(s, term string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), term)
}

// FilterPackages returns the active packages matching c, ordered by ascending base price.
// Packages with equal prices keep their input order.
func FilterPackages(pkgs []VenuePackage, c FilterCriteria) []VenuePackage {
	out := make([]VenuePackage, 0, len(pkgs))
	for i := range pkgs {
		if pkgs[i].IsActive && c.Matches(&pkgs[i]) {
			out = append(out, pkgs[i])
		}
	}
	slices.SortStableFunc(out, func(a, b VenuePackage) int {
		return a.BasePrice.Cmp(b.BasePrice)
	})
	return out
}
