// Command main runs the database seeder for reelist.
package main

import (
	"flag"
	"log"

	"reelist/internal/config"
	"reelist/internal/database"
	"reelist/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	listsPerUser := flag.Int("lists", 2, "Number of lists per user")
	moviesPerList := flag.Int("movies", 8, "Number of movies per list")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a specific seeder preset (e.g., Demo)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring count flags)", *preset)
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else {
		opts := seed.SeedOptions{DryRun: *dryRun}
		if err := s.Run(*numUsers, *listsPerUser, *moviesPerList, opts); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Println("All done! Test users log in with the password: password123")
}
