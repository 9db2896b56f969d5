package bookings

import (
	"venuebook/internal/packages"
	"venuebook/internal/venues"

	"github.com/shopspring/decimal"
)

// CostBreakdown is the priced form of a booking request
type CostBreakdown struct {
	BasePackageCost        decimal.Decimal
	CapacityExtensionCost  decimal.Decimal
	DurationExtensionCost  decimal.Decimal
	AdditionalServicesCost decimal.Decimal
	PackageServicesCost    decimal.Decimal // services not included in the package price
	TotalCost              decimal.Decimal
}

// ExtensionCost charges unitPrice for every unit modified exceeds base by
func ExtensionCost(modified *int, base int, unitPrice decimal.Decimal) decimal.Decimal {
	if modified == nil || *modified <= base {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(*modified - base)))
}

// PriceBooking sums the cost components. pkg may be nil for a fully custom booking.
func PriceBooking(pkg *packages.VenuePackage, modifiedCapacity, modifiedDuration *int, additional []venues.AdditionalService, pkgServices []packages.PackageService) CostBreakdown {
	costs := CostBreakdown{
		BasePackageCost:        decimal.Zero,
		CapacityExtensionCost:  decimal.Zero,
		DurationExtensionCost:  decimal.Zero,
		AdditionalServicesCost: decimal.Zero,
		PackageServicesCost:    decimal.Zero,
	}

	if pkg != nil {
		costs.BasePackageCost = pkg.BasePrice
		costs.CapacityExtensionCost = ExtensionCost(modifiedCapacity, pkg.BaseCapacity, pkg.PricePerAdditionalPerson)
		costs.DurationExtensionCost = ExtensionCost(modifiedDuration, pkg.BaseDurationHours, pkg.PricePerAdditionalHour)
	}

	for _, svc := range additional {
		costs.AdditionalServicesCost = costs.AdditionalServicesCost.Add(svc.Price)
	}
	for _, svc := range pkgServices {
		if !svc.IsIncludedInPackage {
			costs.PackageServicesCost = costs.PackageServicesCost.Add(svc.Price)
		}
	}

	costs.BasePackageCost = costs.BasePackageCost.Round(2)
	costs.CapacityExtensionCost = costs.CapacityExtensionCost.Round(2)
	costs.DurationExtensionCost = costs.DurationExtensionCost.Round(2)
	costs.AdditionalServicesCost = costs.AdditionalServicesCost.Round(2)
	costs.PackageServicesCost = costs.PackageServicesCost.Round(2)
	costs.TotalCost = costs.BasePackageCost.
		Add(costs.CapacityExtensionCost).
		Add(costs.DurationExtensionCost).
		Add(costs.AdditionalServicesCost).
		Add(costs.PackageServicesCost)
	return costs
}

// EffectiveDuration resolves the booking length: override, then package default, then the requested value
func EffectiveDuration(pkg *packages.VenuePackage, modified, requested *int) (int, bool) {
	switch {
	case modified != nil:
		return *modified, true
	case pkg != nil:
		return pkg.BaseDurationHours, true
	case requested != nil:
		return *requested, true
	}
	return 0, false
}
