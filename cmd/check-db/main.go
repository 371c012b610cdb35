// Package main is a diagnostic tool for testing database connectivity and
// inspecting live registration data. It connects to the database, counts
// registrations per status, and lists the lookup tables. The binary exits with
// a non-zero code on any failure so it can be embedded in health checks or
// CI/CD pipeline steps to gate deployments on a reachable, populated database.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	dbPassword := os.Getenv("DATABASE_PASSWORD")
	if dbPassword == "" {
		dbPassword = "sevadesk"
	}

	connStr := fmt.Sprintf("host=localhost port=5432 user=sevadesk password=%s dbname=sevadesk sslmode=disable", dbPassword)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	// Registration counts per status
	fmt.Println("=== REGISTRATIONS ===")
	rows, err := db.Query("SELECT status, COUNT(*), COALESCE(SUM(fee_paid), 0) FROM registrations GROUP BY status ORDER BY status")
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var fees float64
		if err := rows.Scan(&status, &count, &fees); err != nil {
			log.Printf("Warning: failed to scan status row: %v", err)
			continue
		}
		fmt.Printf("Status: %-10s count=%d fees=%.2f\n", status, count, fees)
	}

	// Lookup tables
	fmt.Println("\n=== LOOKUPS ===")
	var categories, panchayaths int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categories); err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM panchayaths").Scan(&panchayaths); err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	fmt.Printf("Categories: %d\n", categories)
	fmt.Printf("Panchayaths: %d\n", panchayaths)

	fmt.Println("\nDatabase check completed successfully")
}
