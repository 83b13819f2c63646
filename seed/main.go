package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/poise-app/poise_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The API seeds the reward calendar, badge catalog and the boot week's
// challenges on startup. This tool exists for content ops: authoring future
// challenge weeks and refreshing the catalogs out of band.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, rewards, badges, challenges")
		weeks    = flag.Int("weeks", 4, "Number of upcoming weeks to author challenges for")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(*weeks); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "rewards":
		log.Println("Seeding login reward calendar only...")
		if err := mainSeeder.SeedRewardsOnly(); err != nil {
			log.Fatalf("Failed to seed rewards: %v", err)
		}
	case "badges":
		log.Println("Seeding badge catalog only...")
		if err := mainSeeder.SeedBadgesOnly(); err != nil {
			log.Fatalf("Failed to seed badges: %v", err)
		}
	case "challenges":
		log.Println("Seeding weekly challenges only...")
		if err := mainSeeder.SeedChallengesOnly(*weeks); err != nil {
			log.Fatalf("Failed to seed challenges: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'rewards', 'badges', or 'challenges'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Reference Data Seeding Tool

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, rewards, badges, challenges
  -weeks int
        Number of upcoming weeks to author challenges for (default 4)
  -help
        Show this help message

Environment Variables:
  DATABASE_URL - Postgres connection string (required)`)
}
