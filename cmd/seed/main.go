// Command main runs the database seeder for the job board.
package main

import (
	"flag"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	jobsPerUser := flag.Int("jobs-per-user", 3, "Jobs posted by each user")
	maxApps := flag.Int("apps", 5, "Maximum applications per job")
	randSeed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	demoOnly := flag.Bool("demo", false, "Only insert the built-in demo listings")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Cleared users, jobs and applications")
	}

	added, err := seed.DemoJobs(db)
	if err != nil {
		log.Fatalf("Demo job seeding failed: %v", err)
	}
	log.Printf("Inserted %d demo listings (poster: %s)", added, seed.DemoPosterEmail)

	if *demoOnly {
		return
	}

	log.Printf("Target: %d users, %d jobs each, up to %d applications per job",
		*numUsers, *jobsPerUser, *maxApps)

	f, err := seed.NewFactory(db, seed.Options{
		NumUsers:      *numUsers,
		JobsPerUser:   *jobsPerUser,
		MaxAppsPerJob: *maxApps,
	}, *randSeed)
	if err != nil {
		log.Fatalf("Failed to build factory: %v", err)
	}

	res, err := f.Populate()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d jobs, %d applications", res.Users, res.Jobs, res.Applications)
	log.Printf("All seeded users have the password: %s", seed.DemoPosterPassword)
}
