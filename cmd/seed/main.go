// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"reviewworld/internal/config"
	"reviewworld/internal/database"
	"reviewworld/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numBrands := flag.Int("brands", 10, "Number of generated brands to create")
	reviewsPer := flag.Int("reviews", 5, "Reviews per variation")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d brands, %d reviews/variation, clean=%v\n",
		*numUsers, *numBrands, *reviewsPer, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:            *numUsers,
		NumBrands:           *numBrands,
		ReviewsPerVariation: *reviewsPer,
		SkipBcrypt:          *skipBcrypt,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Catalog(db); err != nil {
		log.Fatalf("Built-in catalog seeding failed: %v", err)
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Println("All seeded users have the password: SeedPass123!")
}
