package packages

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type CapacityRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type TierOption struct {
	Tier  Tier   `json:"tier"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type VenueTypeOption struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FilterOptions describes the facets a client can filter active packages by
type FilterOptions struct {
	PriceRange    PriceRange        `json:"price_range"`
	CapacityRange CapacityRange     `json:"capacity_range"`
	Tiers         []TierOption      `json:"tiers"`
	VenueTypes    []VenueTypeOption `json:"venue_types"`
	TotalPackages int               `json:"total_packages"`
}

// BuildFilterOptions aggregates ranges and facet counts over the active packages in pkgs.
// With no active packages the ranges are zero and the facet lists are empty.
func BuildFilterOptions(pkgs []VenuePackage) FilterOptions {
	opts := FilterOptions{
		PriceRange: PriceRange{Min: decimal.Zero, Max: decimal.Zero},
		Tiers:      []TierOption{},
		VenueTypes: []VenueTypeOption{},
	}

	tierCounts := make(map[Tier]int)
	typeCounts := make(map[string]int)

	for i := range pkgs {
		p := &pkgs[i]
		if !p.IsActive {
			continue
		}

		if opts.TotalPackages == 0 {
			opts.PriceRange = PriceRange{Min: p.BasePrice, Max: p.BasePrice}
			opts.CapacityRange = CapacityRange{Min: p.BaseCapacity, Max: p.BaseCapacity}
		} else {
			opts.PriceRange.Min = decimal.Min(opts.PriceRange.Min, p.BasePrice)
			opts.PriceRange.Max = decimal.Max(opts.PriceRange.Max, p.BasePrice)
			opts.CapacityRange.Min = min(opts.CapacityRange.Min, p.BaseCapacity)
			opts.CapacityRange.Max = max(opts.CapacityRange.Max, p.BaseCapacity)
		}
		opts.TotalPackages++

		tierCounts[p.Tier]++
		if p.Venue != nil && strings.TrimSpace(p.Venue.Type) != "" {
			typeCounts[p.Venue.Type]++
		}
	}

	for tier, count := range tierCounts {
		opts.Tiers = append(opts.Tiers, TierOption{Tier: tier, Name: tier.String(), Count: count})
	}
	slices.SortFunc(opts.Tiers, func(a, b TierOption) int { return int(a.Tier) - int(b.Tier) })

	for name, count := range typeCounts {
		opts.VenueTypes = append(opts.VenueTypes, VenueTypeOption{Name: name, Count: count})
	}
	slices.SortFunc(opts.VenueTypes, func(a, b VenueTypeOption) int { return strings.Compare(a.Name, b.Name) })

	return opts
}
