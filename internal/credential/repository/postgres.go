package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"field-attendance/backend/internal/credential/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a credential repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const credentialColumns = `id, organization_id, employee_id, credential_id, public_key,
	signature_counter, transports, device_label, is_active, created_at, last_used_at`

// ListActiveByEmployee returns all active credentials for (orgID, employeeID),
// oldest first.
func (r *PostgresRepository) ListActiveByEmployee(ctx context.Context, orgID, employeeID string) ([]*domain.Credential, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+credentialColumns+`
		 FROM webauthn_credentials
		 WHERE organization_id = $1 AND employee_id = $2 AND is_active
		 ORDER BY created_at`,
		orgID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetActiveByCredentialID returns the active credential by base64url id, or nil.
func (r *PostgresRepository) GetActiveByCredentialID(ctx context.Context, orgID, employeeID, credentialID string) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+`
		 FROM webauthn_credentials
		 WHERE organization_id = $1 AND employee_id = $2 AND credential_id = $3 AND is_active`,
		orgID, employeeID, credentialID)
	c, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Create persists the credential. The credential must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webauthn_credentials
		 (id, organization_id, employee_id, credential_id, public_key, signature_counter, transports, device_label, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.OrgID, c.EmployeeID, c.CredentialID, c.PublicKey, int64(c.SignCount),
		strings.Join(c.Transports, ","), c.DeviceLabel, c.Active, c.CreatedAt)
	return err
}

// UpdateSignCount conditionally advances the signature counter. The WHERE
// guard makes the read-compare-write race-safe: a stale writer matches no row.
func (r *PostgresRepository) UpdateSignCount(ctx context.Context, orgID, employeeID, credentialID string, newCount uint32, usedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE webauthn_credentials
		 SET signature_counter = $1, last_used_at = $2
		 WHERE organization_id = $3 AND employee_id = $4 AND credential_id = $5
		   AND is_active AND signature_counter <= $1`,
		int64(newCount), usedAt, orgID, employeeID, credentialID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (*domain.Credential, error) {
	var (
		c          domain.Credential
		count      int64
		transports string
	)
	if err := row.Scan(&c.ID, &c.OrgID, &c.EmployeeID, &c.CredentialID, &c.PublicKey,
		&count, &transports, &c.DeviceLabel, &c.Active, &c.CreatedAt, &c.LastUsedAt); err != nil {
		return nil, err
	}
	c.SignCount = uint32(count)
	if transports != "" {
		c.Transports = strings.Split(transports, ",")
	}
	return &c, nil
}
