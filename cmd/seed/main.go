// seed inserts development sample data for local testing.
// Idempotent: skips inserts if org O1 already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	attendancedomain "field-attendance/backend/internal/attendancetoken/domain"
	attendancerepo "field-attendance/backend/internal/attendancetoken/repository"
	"field-attendance/backend/internal/config"
	"field-attendance/backend/internal/db"
	employeedomain "field-attendance/backend/internal/employee/domain"
	employeerepo "field-attendance/backend/internal/employee/repository"
	orgdomain "field-attendance/backend/internal/organization/domain"
	orgrepo "field-attendance/backend/internal/organization/repository"
	"field-attendance/backend/internal/security"
)

const (
	seedOrgID    = "O1"
	seedEmpID    = "E1"
	seedEmpName  = "Juan"
	seedRawToken = "dev-attendance-token-juan-01"
	seedCode     = "123456"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	orgs := orgrepo.NewPostgresRepository(database)
	employees := employeerepo.NewPostgresRepository(database)
	tokens := attendancerepo.NewPostgresRepository(database)

	existing, err := orgs.GetByID(ctx, seedOrgID)
	if err != nil {
		log.Fatalf("check org: %v", err)
	}
	if existing != nil {
		log.Printf("org %s already present, nothing to do", seedOrgID)
		return
	}

	now := time.Now().UTC()
	if err := orgs.Create(ctx, &orgdomain.Org{
		ID:        seedOrgID,
		Name:      "Dev Field Services",
		Status:    orgdomain.OrgStatusActive,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create org: %v", err)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	codeHash, err := hasher.Hash([]byte(seedCode))
	if err != nil {
		log.Fatalf("hash fallback code: %v", err)
	}
	if err := employees.Create(ctx, &employeedomain.Employee{
		ID:               seedEmpID,
		OrgID:            seedOrgID,
		DisplayName:      seedEmpName,
		Status:           employeedomain.EmployeeStatusActive,
		FallbackCodeHash: codeHash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		log.Fatalf("create employee: %v", err)
	}

	if err := tokens.Create(ctx, &attendancedomain.TokenRecord{
		ID:          "T1",
		OrgID:       seedOrgID,
		EmployeeID:  seedEmpID,
		TokenDigest: security.DigestToken(seedRawToken),
		Active:      true,
		CreatedAt:   now,
	}); err != nil {
		log.Fatalf("create token: %v", err)
	}

	fmt.Printf("seeded org %s, employee %s (%s)\n", seedOrgID, seedEmpID, seedEmpName)
	fmt.Printf("attendance token: %s\n", seedRawToken)
	fmt.Printf("fallback code:    %s\n", seedCode)
}
