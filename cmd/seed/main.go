// Command main runs the database seeder for Cafehub.
package main

import (
	"flag"
	"log"
	"time"

	"cafehub/internal/config"
	"cafehub/internal/database"
	"cafehub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of fake users to create")
	numCafes := flag.Int("cafes", 30, "Number of fake cafes to create")
	likeRate := flag.Float64("like-rate", 0.15, "Probability that a user likes a given cafe")
	citiesOnly := flag.Bool("cities-only", false, "Only upsert the built-in cities")
	shouldClean := flag.Bool("clean", false, "Delete users, cafes and likes before seeding")
	citiesFile := flag.String("cities-file", "", "YAML file with extra cities to upsert")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Cities(db); err != nil {
		log.Fatalf("City seeding failed: %v", err)
	}
	log.Printf("Upserted %d cities", len(seed.BuiltInCities))
	if *citiesFile != "" {
		extra, err := seed.LoadCitiesFile(*citiesFile)
		if err != nil {
			log.Fatalf("Failed to load cities file: %v", err)
		}
		if err := seed.UpsertCities(db, extra); err != nil {
			log.Fatalf("City seeding failed: %v", err)
		}
		log.Printf("Upserted %d cities from %s", len(extra), *citiesFile)
	}
	if *citiesOnly {
		return
	}

	f := seed.NewFactory(db, *randSeed)
	if *shouldClean {
		if err := f.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := f.Users(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	cafes, err := f.Cafes(*numCafes)
	if err != nil {
		log.Fatalf("Cafe seeding failed: %v", err)
	}
	likes, err := f.Likes(users, cafes, *likeRate)
	if err != nil {
		log.Fatalf("Like seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d cafes, %d likes", len(users), len(cafes), likes)
	log.Printf("All fake users have the password: %s", seed.DefaultPassword)
}
