// issuetoken assigns a fresh attendance token to an employee. Previous tokens
// are deactivated and only the digest of the new one is stored; the raw value
// is printed once and cannot be recovered later.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	attendancedomain "field-attendance/backend/internal/attendancetoken/domain"
	attendancerepo "field-attendance/backend/internal/attendancetoken/repository"
	"field-attendance/backend/internal/config"
	"field-attendance/backend/internal/db"
	employeerepo "field-attendance/backend/internal/employee/repository"
	"field-attendance/backend/internal/security"
)

func main() {
	orgID := flag.String("org", "", "Organization ID")
	employeeID := flag.String("employee", "", "Employee ID")
	flag.Parse()

	if *orgID == "" || *employeeID == "" {
		log.Fatal("usage: issuetoken -org <org-id> -employee <employee-id>")
	}

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
	employees := employeerepo.NewPostgresRepository(database)
	tokens := attendancerepo.NewPostgresRepository(database)

	emp, err := employees.GetByOrgAndID(ctx, *orgID, *employeeID)
	if err != nil {
		log.Fatalf("lookup employee: %v", err)
	}
	if emp == nil {
		log.Fatalf("employee %s/%s not found", *orgID, *employeeID)
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("generate token: %v", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := tokens.DeactivateForEmployee(ctx, *orgID, *employeeID); err != nil {
		log.Fatalf("deactivate previous tokens: %v", err)
	}
	if err := tokens.Create(ctx, &attendancedomain.TokenRecord{
		ID:          uuid.New().String(),
		OrgID:       *orgID,
		EmployeeID:  *employeeID,
		TokenDigest: security.DigestToken(token),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		log.Fatalf("store token: %v", err)
	}

	fmt.Printf("new attendance token for %s (%s): %s\n", emp.DisplayName, *employeeID, token)
	fmt.Println("store it now; only its digest is kept server-side")
}
