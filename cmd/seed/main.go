// Command seed wipes and repopulates the database with a demo data
// set: one user per role, a handful of venues and the standard
// resource pools.  Every seeded account logs in with "password123".
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/iliyamo/campus-event-allocation/internal/config"
	"github.com/iliyamo/campus-event-allocation/internal/database"
	"github.com/iliyamo/campus-event-allocation/internal/utils"
)

type seedUser struct {
	Name         string
	Email        string
	Role         string
	DepartmentID string
	SchoolID     string
}

type seedVenue struct {
	Name     string
	Capacity int
	Type     string
	Features []string
}

type seedResource struct {
	Name     string
	Category string
	Total    int
	Unit     string
}

var users = []seedUser{
	{"John Coordinator", "coordinator@university.edu", "Coordinator", "CS", "Engineering"},
	{"Sarah HOD", "hod@university.edu", "HOD", "CS", "Engineering"},
	{"Michael Dean", "dean@university.edu", "Dean", "", "Engineering"},
	{"Dr. James Head", "head@university.edu", "Head", "", ""},
	{"Admin User", "admin@university.edu", "Admin", "", ""},
}

var venues = []seedVenue{
	{"Main Auditorium", 500, "Auditorium", []string{"Projector", "Sound System", "AC", "Stage"}},
	{"Conference Hall A", 150, "Conference Hall", []string{"Projector", "Whiteboard", "AC", "WiFi"}},
	{"Seminar Room 101", 60, "Seminar Room", []string{"Projector", "Whiteboard", "AC"}},
	{"Open Amphitheater", 300, "Outdoor", []string{"Stage", "Sound System"}},
	{"Computer Lab 3", 80, "Lab", []string{"Computers", "Projector", "AC", "WiFi"}},
}

var resources = []seedResource{
	{"Projector", "Equipment", 15, "units"},
	{"Microphone", "Equipment", 25, "units"},
	{"Chairs", "Facility", 1000, "units"},
	{"Tables", "Facility", 200, "units"},
	{"Laptop", "ITC", 50, "units"},
	{"Sound System", "Equipment", 8, "sets"},
	{"Catering Service", "Food", 5000, "servings"},
	{"Coffee Break Kit", "Food", 500, "kits"},
	{"Banners", "Facility", 30, "units"},
	{"Extension Cords", "ITC", 100, "units"},
}

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := clear(ctx, db); err != nil {
		log.Fatalf("clear existing data failed: %v", err)
	}
	log.Println("cleared existing data")

	if err := seedUsers(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed users failed: %v", err)
	}
	log.Println("seeded users")

	if err := seedVenues(ctx, db); err != nil {
		log.Fatalf("seed venues failed: %v", err)
	}
	log.Println("seeded venues")

	if err := seedResources(ctx, db); err != nil {
		log.Fatalf("seed resources failed: %v", err)
	}
	log.Println("seeded resources")

	log.Println("database seeded successfully")
	for _, u := range users {
		log.Printf("%s: %s / password123", u.Role, u.Email)
	}
}

// clear empties every table in dependency order.  Child tables go
// first so foreign keys never block the deletes.
func clear(ctx context.Context, db *sql.DB) error {
	tables := []string{
		"allocation_resources",
		"allocations",
		"approval_logs",
		"event_resource_requests",
		"events",
		"refresh_tokens",
		"resources",
		"venues",
		"users",
	}
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(ctx context.Context, db *sql.DB, cost int) error {
	// One hash for all demo users keeps the seeder fast.
	hash, err := utils.HashPassword("password123", cost)
	if err != nil {
		return err
	}
	const q = `INSERT INTO users (name, email, password_hash, role, department_id, school_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	for _, u := range users {
		if _, err := db.ExecContext(ctx, q, u.Name, u.Email, hash, u.Role, u.DepartmentID, u.SchoolID); err != nil {
			return err
		}
	}
	return nil
}

func seedVenues(ctx context.Context, db *sql.DB) error {
	const q = `INSERT INTO venues (name, capacity, type, availability_status, features)
	           VALUES (?, ?, ?, 'Available', ?)`
	for _, v := range venues {
		features, err := json.Marshal(v.Features)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, q, v.Name, v.Capacity, v.Type, features); err != nil {
			return err
		}
	}
	return nil
}

func seedResources(ctx context.Context, db *sql.DB) error {
	const q = `INSERT INTO resources (name, category, total_quantity, available_quantity, unit)
	           VALUES (?, ?, ?, ?, ?)`
	for _, r := range resources {
		if _, err := db.ExecContext(ctx, q, r.Name, r.Category, r.Total, r.Total, r.Unit); err != nil {
			return err
		}
	}
	return nil
}
