package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	attendancedomain "field-attendance/backend/internal/attendancetoken/domain"
	challengedomain "field-attendance/backend/internal/challenge/domain"
	credentialdomain "field-attendance/backend/internal/credential/domain"
	employeedomain "field-attendance/backend/internal/employee/domain"
	"field-attendance/backend/internal/security"
)

// In-memory repositories backing the service tests.

type memTokenRepo struct {
	mu      sync.Mutex
	records []*attendancedomain.TokenRecord
}

func (r *memTokenRepo) GetActiveByDigest(_ context.Context, digest string) (*attendancedomain.TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Active && rec.TokenDigest == digest {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepo) Create(_ context.Context, t *attendancedomain.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, t)
	return nil
}

func (r *memTokenRepo) DeactivateForEmployee(_ context.Context, orgID, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, rec := range r.records {
		if rec.OrgID == orgID && rec.EmployeeID == employeeID && rec.Active {
			rec.Active = false
			rec.RotatedAt = &now
		}
	}
	return nil
}

type memEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]*employeedomain.Employee // keyed orgID+"/"+id
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: make(map[string]*employeedomain.Employee)}
}

func (r *memEmployeeRepo) GetByOrgAndID(_ context.Context, orgID, id string) (*employeedomain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.employees[orgID+"/"+id], nil
}

func (r *memEmployeeRepo) Create(_ context.Context, e *employeedomain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.OrgID+"/"+e.ID] = e
	return nil
}

func (r *memEmployeeRepo) SetFallbackCodeHash(_ context.Context, orgID, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[orgID+"/"+id]
	if !ok {
		return fmt.Errorf("employee %s/%s not found", orgID, id)
	}
	e.FallbackCodeHash = hash
	return nil
}

type memChallengeRepo struct {
	mu         sync.Mutex
	challenges []*challengedomain.Challenge
}

func (r *memChallengeRepo) Create(_ context.Context, c *challengedomain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.challenges = append(r.challenges, c)
	return nil
}

func (r *memChallengeRepo) LatestUnexpired(_ context.Context, orgID, employeeID, tokenDigest string, kind challengedomain.Kind, now time.Time) (*challengedomain.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *challengedomain.Challenge
	for _, c := range r.challenges {
		if c.OrgID != orgID || c.EmployeeID != employeeID || c.TokenDigest != tokenDigest || c.Kind != kind {
			continue
		}
		if !c.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	return latest, nil
}

type memCredentialRepo struct {
	mu          sync.Mutex
	credentials []*credentialdomain.Credential
}

func (r *memCredentialRepo) ListActiveByEmployee(_ context.Context, orgID, employeeID string) ([]*credentialdomain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*credentialdomain.Credential
	for _, c := range r.credentials {
		if c.OrgID == orgID && c.EmployeeID == employeeID && c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCredentialRepo) GetActiveByCredentialID(_ context.Context, orgID, employeeID, credentialID string) (*credentialdomain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.credentials {
		if c.OrgID == orgID && c.EmployeeID == employeeID && c.CredentialID == credentialID && c.Active {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCredentialRepo) Create(_ context.Context, c *credentialdomain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credentials = append(r.credentials, c)
	return nil
}

func (r *memCredentialRepo) UpdateSignCount(_ context.Context, orgID, employeeID, credentialID string, newCount uint32, usedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.credentials {
		if c.OrgID == orgID && c.EmployeeID == employeeID && c.CredentialID == credentialID && c.Active {
			if c.SignCount > newCount {
				return false, nil
			}
			c.SignCount = newCount
			c.LastUsedAt = &usedAt
			return true, nil
		}
	}
	return false, nil
}

// recordingAudit captures audit events for assertions.
type recordingAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

type auditEvent struct {
	OrgID      string
	EmployeeID string
	Action     string
	Resource   string
	Metadata   string
}

func (a *recordingAudit) LogEvent(_ context.Context, orgID, employeeID, action, resource, metadata string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{orgID, employeeID, action, resource, metadata})
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

// testEnv bundles a service with its in-memory stores and a seeded identity.
type testEnv struct {
	svc         *Service
	tokens      *memTokenRepo
	employees   *memEmployeeRepo
	challenges  *memChallengeRepo
	credentials *memCredentialRepo
	audit       *recordingAudit
}

const (
	testOrgID    = "O1"
	testEmpID    = "E1"
	testEmpName  = "Juan"
	testRawToken = "juan-attendance-token-001"
)

func newTestEnv() *testEnv {
	env := &testEnv{
		tokens:      &memTokenRepo{},
		employees:   newMemEmployeeRepo(),
		challenges:  &memChallengeRepo{},
		credentials: &memCredentialRepo{},
		audit:       &recordingAudit{},
	}
	env.svc = NewService(Deps{
		Tokens:        env.tokens,
		Employees:     env.employees,
		Challenges:    env.challenges,
		Credentials:   env.credentials,
		Hasher:        security.NewHasher(4),
		Audit:         env.audit,
		RPDisplayName: "Attendance Check-In",
	})

	now := time.Now().UTC()
	env.employees.Create(context.Background(), &employeedomain.Employee{
		ID:          testEmpID,
		OrgID:       testOrgID,
		DisplayName: testEmpName,
		Status:      employeedomain.EmployeeStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	env.tokens.Create(context.Background(), &attendancedomain.TokenRecord{
		ID:          "T1",
		OrgID:       testOrgID,
		EmployeeID:  testEmpID,
		TokenDigest: security.DigestToken(testRawToken),
		Active:      true,
		CreatedAt:   now,
	})
	return env
}
