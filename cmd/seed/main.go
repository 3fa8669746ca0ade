package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

type seedDoctor struct {
	name           string
	specialization string
	phone          string
	email          string
	experience     int
}

var doctors = []seedDoctor{
	{"Dr. Sarah Smith", "Cardiology", "555-0101", "sarah.smith@caredesk.local", 12},
	{"Dr. Rahul Mehta", "Neurology", "555-0102", "rahul.mehta@caredesk.local", 8},
	{"Dr. Ana Lopez", "Pediatrics", "555-0103", "ana.lopez@caredesk.local", 15},
	{"Dr. Kenji Sato", "Dermatology", "555-0104", "kenji.sato@caredesk.local", 5},
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	seedUser(db)
	seedDoctors(db)
}

func seedUser(db *sql.DB) {
	email := "demo@caredesk.local"
	password := "password123"

	if envEmail := os.Getenv("SEED_USER_EMAIL"); envEmail != "" {
		email = envEmail
	}

	if envPass := os.Getenv("SEED_USER_PASSWORD"); envPass != "" {
		password = envPass
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password = excluded.password, updated_at = NOW();
	`

	if _, err := db.Exec(query, "Demo User", email, string(hashed)); err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	fmt.Printf("User seeded\n   User: %s\n   Pass: %s\n", email, password)
}

func seedDoctors(db *sql.DB) {
	query := `
		INSERT INTO doctors (name, specialization, phone, email, experience)
		SELECT $1::varchar, $2::varchar, $3::varchar, $4::varchar, $5::integer
		WHERE NOT EXISTS (SELECT 1 FROM doctors WHERE email = $4::varchar)
	`

	seeded := 0
	for _, d := range doctors {
		res, err := db.Exec(query, d.name, d.specialization, d.phone, d.email, d.experience)
		if err != nil {
			log.Fatalf("Failed to seed doctor %s: %v", d.name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			seeded++
		}
	}

	fmt.Printf("Doctors seeded: %d new, %d total in seed set\n", seeded, len(doctors))
}
