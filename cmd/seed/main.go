package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"venuebook/internal/bookings"
	"venuebook/internal/notifications"
	"venuebook/internal/packages"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/database"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db  *database.DB
	log *logger.Logger
}

func main() {
	fmt.Println("🌱 Starting Venuebook Database Seeder...")

	cfg := config.Load()
	appLogger := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.InitDB(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, log: appLogger}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates every table, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_package_services",
		"booking_additional_services",
		"bookings",
		"package_services",
		"venue_packages",
		"additional_services",
		"venue_images",
		"venues",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit().Error
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	venueIDs, err := s.SeedVenues()
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	packageIDs, err := s.SeedPackages(venueIDs)
	if err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	if err := s.SeedBookings(ctx, userIDs, venueIDs, packageIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}
	return nil
}

// SeedUsers creates one admin and two regular users, all with password "qwerty"
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key   string
		name  string
		email string
		role  users.Role
	}{
		{"admin", "Admin User", "admin@venuebook.dev", users.RoleAdmin},
		{"user1", "Priya Nair", "priya@venuebook.dev", users.RoleUser},
		{"user2", "Tom Becker", "tom@venuebook.dev", users.RoleUser},
	}

	userIDs := make(map[string]uuid.UUID)
	for _, u := range usersData {
		user := users.User{
			Name:          u.name,
			Email:         u.email,
			ContactNumber: "+1-555-0100",
			PasswordHash:  string(hashedPassword),
			Role:          u.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		userIDs[u.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}
	return userIDs, nil
}

func (s *Seeder) SeedVenues() (map[string]uuid.UUID, error) {
	fmt.Println("  🏛️  Seeding venues...")

	venuesData := []struct {
		key      string
		venue    venues.Venue
		images   []string
		services []venues.AdditionalService
	}{
		{
			key:    "hall",
			venue:  venues.Venue{Name: "Grand Riverside Hall", Address: "12 River Rd", Type: "Banquet Hall", Status: venues.VenueStatusAvailable, Rating: 4.6},
			images: []string{"https://cdn.venuebook.dev/hall-1.jpg", "https://cdn.venuebook.dev/hall-2.jpg"},
			services: []venues.AdditionalService{
				{Name: "Live DJ", Price: decimal.NewFromInt(350), Category: venues.CategoryEntertainment},
				{Name: "Buffet Dinner", Price: decimal.NewFromInt(1200), Category: venues.CategoryFood},
			},
		},
		{
			key:    "garden",
			venue:  venues.Venue{Name: "Rose Garden Lawn", Address: "4 Bloom Ave", Type: "Garden", Status: venues.VenueStatusAvailable, Rating: 4.2},
			images: []string{"https://cdn.venuebook.dev/garden-1.jpg"},
			services: []venues.AdditionalService{
				{Name: "Floral Arch", Price: decimal.NewFromInt(220), Category: venues.CategoryDecoration},
				{Name: "Photographer", Price: decimal.NewFromInt(500), Category: venues.CategoryPhotography},
			},
		},
		{
			key:   "loft",
			venue: venues.Venue{Name: "Skyline Loft", Address: "88 Tower St", Type: "Rooftop", Status: venues.VenueStatusMaintenance, Rating: 3.9},
		},
	}

	venueIDs := make(map[string]uuid.UUID)
	for _, v := range venuesData {
		venue := v.venue
		for i, url := range v.images {
			venue.Images = append(venue.Images, venues.VenueImage{URL: url, SortOrder: i})
		}
		venue.AdditionalServices = v.services
		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", venue.Name, err)
		}
		venueIDs[v.key] = venue.ID
		fmt.Printf("    ✅ Created venue: %s (%s)\n", venue.Name, venue.Status)
	}
	return venueIDs, nil
}

func (s *Seeder) SeedPackages(venueIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  📦 Seeding packages...")

	packagesData := []struct {
		key string
		pkg packages.VenuePackage
	}{
		{"hall-basic", packages.VenuePackage{
			VenueID: venueIDs["hall"], Name: "Hall Essentials", Tier: packages.TierBasic,
			BaseCapacity: 80, BaseDurationHours: 1, BasePrice: decimal.NewFromInt(1500),
			PricePerAdditionalPerson: decimal.NewFromInt(12), PricePerAdditionalHour: decimal.NewFromInt(200),
			IsActive: true,
			Services: []packages.PackageService{
				{Name: "Sound System", Price: decimal.NewFromInt(150), IsIncludedInPackage: true},
				{Name: "Stage Lighting", Price: decimal.NewFromInt(180), IsAvailableForCustomization: true},
			},
		}},
		{"hall-advance", packages.VenuePackage{
			VenueID: venueIDs["hall"], Name: "Hall Gala", Tier: packages.TierAdvance,
			Description: "Full-service evening with decoration and cake", BaseCapacity: 200, BaseDurationHours: 2,
			BasePrice: decimal.NewFromInt(5200), PricePerAdditionalPerson: decimal.NewFromInt(18),
			PricePerAdditionalHour: decimal.NewFromInt(450), IncludesDecoration: true, IncludesCake: true,
			IncludesSoundSystem: true, IsActive: true,
		}},
		{"garden-intermediate", packages.VenuePackage{
			VenueID: venueIDs["garden"], Name: "Garden Afternoon", Tier: packages.TierIntermediate,
			BaseCapacity: 120, BaseDurationHours: 1, BasePrice: decimal.NewFromInt(2400),
			PricePerAdditionalPerson: decimal.NewFromInt(10), IncludesDecoration: true, IsActive: true,
			Services: []packages.PackageService{
				{Name: "Tent Rental", Price: decimal.NewFromInt(300), IsAvailableForCustomization: true},
			},
		}},
		{"garden-custom", packages.VenuePackage{
			VenueID: venueIDs["garden"], Name: "Garden Custom", Tier: packages.TierCustom,
			BaseCapacity: 60, BaseDurationHours: 1, BasePrice: decimal.NewFromInt(900), IsActive: true,
		}},
	}

	packageIDs := make(map[string]uuid.UUID)
	for _, p := range packagesData {
		pkg := p.pkg
		if err := s.db.PostgreSQL.Omit("Venue").Create(&pkg).Error; err != nil {
			return nil, fmt.Errorf("failed to create package %s: %w", pkg.Name, err)
		}
		packageIDs[p.key] = pkg.ID
		fmt.Printf("    ✅ Created package: %s (%s)\n", pkg.Name, pkg.Tier)
	}
	return packageIDs, nil
}

// SeedBookings books through the booking service so prices and snapshots are computed the usual way
func (s *Seeder) SeedBookings(ctx context.Context, userIDs, venueIDs, packageIDs map[string]uuid.UUID) error {
	fmt.Println("  📅 Seeding bookings...")

	svc := bookings.NewService(
		bookings.NewRepository(s.db.PostgreSQL),
		bookings.NewNoopVenueLock(),
		notifications.NewNoopPublisher(),
		cache.NewNoopService(),
		s.log,
	)

	hallPkg := packageIDs["hall-basic"]
	gardenPkg := packageIDs["garden-intermediate"]
	start := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	later := time.Now().UTC().AddDate(0, 1, 7).Format("2006-01-02")

	requests := []struct {
		user string
		req  bookings.CreateBookingRequest
	}{
		{"user1", bookings.CreateBookingRequest{VenueID: venueIDs["hall"], PackageID: &hallPkg, StartTime: start, ModifiedCapacity: intPtr(100)}},
		{"user2", bookings.CreateBookingRequest{VenueID: venueIDs["garden"], PackageID: &gardenPkg, StartTime: later, ModifiedDurationHours: intPtr(2)}},
	}

	var first uuid.UUID
	for i, r := range requests {
		created, err := svc.CreateBooking(ctx, userIDs[r.user], r.req)
		if err != nil {
			return err
		}
		if i == 0 {
			first = created.ID
		}
		fmt.Printf("    ✅ Created booking: %s total %s\n", created.ID, created.TotalCost.StringFixed(2))
	}

	// one canceled booking so analytics has something to count
	if err := svc.CancelBooking(ctx, first); err != nil {
		return err
	}
	fmt.Printf("    ✅ Canceled booking: %s\n", first)
	return nil
}

func intPtr(v int) *int { return &v }
