package main

import (
	"log"
	"os"

	"lexcircle-be/internal/model"
	"lexcircle-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the subject catalog and a handful of demo accounts so a fresh
// instance has channels to resolve and people to talk.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding subject catalog and demo users\n")

	subjects := []model.Subject{
		{Name: "Contracts"},
		{Name: "Torts"},
		{Name: "Constitutional Law"},
		{Name: "Criminal Law"},
		{Name: "Civil Procedure"},
		{Name: "Property"},
		{Name: "Evidence"},
		{Name: "Professional Responsibility"},
	}

	for _, s := range subjects {
		var existing model.Subject
		if err := db.Where("name = ?", s.Name).First(&existing).Error; err == nil {
			color.Yellow("Subject '%s' already exists, skipping...", s.Name)
			continue
		}
		s.Id = uuid.New()
		if err := db.Create(&s).Error; err != nil {
			color.Red("Failed to seed subject '%s': %v", s.Name, err)
			continue
		}
		color.Green("Seeded subject '%s'", s.Name)
	}

	harvard := "Harvard Law School"
	yale := "Yale Law School"
	users := []model.User{
		{Username: "amicus", School: &harvard},
		{Username: "gavel", School: &yale},
		{Username: "pro-se"},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Username)
			continue
		}
		u.Id = uuid.New()
		if err := db.Create(&u).Error; err != nil {
			color.Red("Failed to seed user '%s': %v", u.Username, err)
			continue
		}
		color.Green("Seeded user '%s'", u.Username)
	}

	color.Cyan("\n✅ Seeding done")
}
