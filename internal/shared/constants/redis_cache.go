package constants

import (
	"time"
)

// Redis cache keys and TTLs.
// Pattern: venuebook:{module}:{operation}:{identifier}:{params?}

// Static data (rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour
	TTL_STATIC_SHORT = 6 * time.Hour
)

// Semi-static data (catalog edits)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute
)

// Dynamic data
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

const (
	CACHE_PREFIX = "venuebook"
)

// ================== PACKAGES MODULE ==================

const (
	CACHE_KEY_PACKAGES_ACTIVE_ALL   = CACHE_PREFIX + ":packages:active:all"
	CACHE_KEY_PACKAGES_BY_VENUE     = CACHE_PREFIX + ":packages:active:venue:" // + venue-id
	CACHE_KEY_PACKAGE_FILTER_OPTION = CACHE_PREFIX + ":packages:filter_options"
)

const (
	TTL_PACKAGES_ACTIVE   = TTL_SEMI_STATIC_SHORT
	TTL_PACKAGES_BY_VENUE = TTL_SEMI_STATIC_SHORT
	TTL_FILTER_OPTIONS    = TTL_SEMI_STATIC_QUICK
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUES_ALL   = CACHE_PREFIX + ":venues:list:all"
	CACHE_KEY_VENUE_DETAIL = CACHE_PREFIX + ":venues:detail:uuid:" // + venue-id
)

const (
	TTL_VENUES_LIST  = TTL_SEMI_STATIC_QUICK
	TTL_VENUE_DETAIL = TTL_SEMI_STATIC_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_BOOKINGS = CACHE_PREFIX + ":analytics:bookings:overview" // + :from:X:to:Y
)

const (
	TTL_ANALYTICS_BOOKINGS = TTL_DYNAMIC_MEDIUM
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PACKAGES_ALL  = CACHE_PREFIX + ":packages:*"
	PATTERN_INVALIDATE_VENUES_ALL    = CACHE_PREFIX + ":venues:*"
	PATTERN_INVALIDATE_ANALYTICS_ALL = CACHE_PREFIX + ":analytics:*"
)

func BuildPackagesByVenueKey(venueID string) string {
	return CACHE_KEY_PACKAGES_BY_VENUE + venueID
}

func BuildVenueDetailKey(venueID string) string {
	return CACHE_KEY_VENUE_DETAIL + venueID
}

func BuildBookingOverviewKey(from, to string) string {
	return CACHE_KEY_ANALYTICS_BOOKINGS + ":from:" + from + ":to:" + to
}
