package bookings

import (
	"testing"

	"venuebook/internal/packages"
	"venuebook/internal/venues"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func basePackage() *packages.VenuePackage {
	return &packages.VenuePackage{
		ID:                       uuid.New(),
		Name:                     "Standard",
		Tier:                     packages.TierBasic,
		BaseCapacity:             50,
		BaseDurationHours:        2,
		BasePrice:                dec("1000"),
		PricePerAdditionalPerson: dec("10"),
		PricePerAdditionalHour:   dec("150.50"),
		IsActive:                 true,
	}
}

func TestCapacityExtensionCost(t *testing.T) {
	costs := PriceBooking(basePackage(), intPtr(60), nil, nil, nil)
	assert.True(t, dec("100").Equal(costs.CapacityExtensionCost), costs.CapacityExtensionCost.String())
	assert.True(t, dec("1100").Equal(costs.TotalCost))
}

func TestExtensionCostIgnoresReductions(t *testing.T) {
	assert.True(t, ExtensionCost(intPtr(40), 50, dec("10")).IsZero())
	assert.True(t, ExtensionCost(nil, 50, dec("10")).IsZero())
	assert.True(t, dec("301").Equal(ExtensionCost(intPtr(4), 2, dec("150.50"))))
}

func TestTotalIsSumOfComponents(t *testing.T) {
	pkg := basePackage()
	additional := []venues.AdditionalService{
		{ID: uuid.New(), Name: "DJ", Price: dec("250.25")},
		{ID: uuid.New(), Name: "Lighting", Price: dec("99.99")},
	}
	pkgServices := []packages.PackageService{
		{ID: uuid.New(), Name: "Cake", Price: dec("80"), IsIncludedInPackage: true},
		{ID: uuid.New(), Name: "Photo booth", Price: dec("120.10")},
	}

	costs := PriceBooking(pkg, intPtr(55), intPtr(3), additional, pkgServices)

	assert.True(t, dec("50").Equal(costs.CapacityExtensionCost))
	assert.True(t, dec("150.50").Equal(costs.DurationExtensionCost))
	assert.True(t, dec("350.24").Equal(costs.AdditionalServicesCost))
	assert.True(t, dec("120.10").Equal(costs.PackageServicesCost), "included services are not charged")

	sum := costs.BasePackageCost.
		Add(costs.CapacityExtensionCost).
		Add(costs.DurationExtensionCost).
		Add(costs.AdditionalServicesCost).
		Add(costs.PackageServicesCost)
	assert.True(t, sum.Equal(costs.TotalCost))
	assert.True(t, dec("1670.84").Equal(costs.TotalCost), costs.TotalCost.String())
}

func TestPriceBookingWithoutPackage(t *testing.T) {
	additional := []venues.AdditionalService{{ID: uuid.New(), Price: dec("40")}}

	costs := PriceBooking(nil, intPtr(500), intPtr(10), additional, nil)
	assert.True(t, costs.BasePackageCost.IsZero())
	assert.True(t, costs.CapacityExtensionCost.IsZero())
	assert.True(t, costs.DurationExtensionCost.IsZero())
	assert.True(t, dec("40").Equal(costs.TotalCost))
}

func TestEffectiveDurationPrecedence(t *testing.T) {
	pkg := basePackage()

	d, ok := EffectiveDuration(pkg, intPtr(5), intPtr(9))
	assert.True(t, ok)
	assert.Equal(t, 5, d)

	d, ok = EffectiveDuration(pkg, nil, intPtr(9))
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	d, ok = EffectiveDuration(nil, nil, intPtr(9))
	assert.True(t, ok)
	assert.Equal(t, 9, d)

	_, ok = EffectiveDuration(nil, nil, nil)
	assert.False(t, ok)
}
