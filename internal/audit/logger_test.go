package audit

import (
	"context"
	"sync"
	"testing"

	"field-attendance/backend/internal/audit/domain"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *memAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func TestLogger_LogEvent(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, func(context.Context) string { return "203.0.113.9" })

	l.LogEvent(context.Background(), "org-1", "emp-1", "authentication_verify", "credential", `{"verified":true}`)

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" {
		t.Error("entry ID should be set")
	}
	if e.OrgID != "org-1" || e.EmployeeID != "emp-1" {
		t.Errorf("scope = (%q, %q), want (org-1, emp-1)", e.OrgID, e.EmployeeID)
	}
	if e.IP != "203.0.113.9" {
		t.Errorf("IP = %q, want extractor value", e.IP)
	}
}

func TestLogger_SentinelOrg(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, nil)

	l.LogEvent(context.Background(), "", "", "token_resolve_failed", "attendance_token", "")

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	if repo.entries[0].OrgID != SentinelOrgID {
		t.Errorf("OrgID = %q, want %q", repo.entries[0].OrgID, SentinelOrgID)
	}
	if repo.entries[0].IP != "unknown" {
		t.Errorf("IP = %q, want unknown", repo.entries[0].IP)
	}
}

func TestLogger_NilRepo(t *testing.T) {
	l := NewLogger(nil, nil)
	// must not panic
	l.LogEvent(context.Background(), "org-1", "emp-1", "x", "y", "")
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &memAuditRepo{}, &memAuditRepo{}
	l := Multi(NewLogger(a, nil), NewLogger(b, nil), nil, Nop())

	l.LogEvent(context.Background(), "org-1", "emp-1", "registration_succeeded", "webauthn_credential", "")

	if len(a.entries) != 1 || len(b.entries) != 1 {
		t.Fatalf("entries = (%d, %d), want (1, 1)", len(a.entries), len(b.entries))
	}
}
