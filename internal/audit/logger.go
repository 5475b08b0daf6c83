package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"field-attendance/backend/internal/audit/domain"
	auditrepo "field-attendance/backend/internal/audit/repository"
)

// SentinelOrgID is the org_id used for events that could not be attributed to
// an org (e.g. a token digest that resolved to nothing).
const SentinelOrgID = "_system"

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, orgID, employeeID, action, resource, metadata string)
}

// Logger implements AuditLogger using the audit repository and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
}

// NewLogger returns an AuditLogger that persists to repo and uses ipExtractor
// for client IP. ipExtractor may be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor}
}

// LogEvent writes one audit log entry. Best-effort: errors are logged and not returned.
func (l *Logger) LogEvent(ctx context.Context, orgID, employeeID, action, resource, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	if orgID == "" {
		orgID = SentinelOrgID
	}
	entry := &domain.AuditLog{
		ID:         uuid.New().String(),
		OrgID:      orgID,
		EmployeeID: employeeID,
		Action:     action,
		Resource:   resource,
		IP:         ip,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to write %s/%s event: %v", action, resource, err)
	}
}

// Nop returns an AuditLogger that records nothing. Useful in tests and when
// auditing is not configured.
func Nop() AuditLogger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) LogEvent(context.Context, string, string, string, string, string) {}

// Multi fans one event out to every given logger, e.g. the Postgres logger
// plus an OTel emitter.
func Multi(loggers ...AuditLogger) AuditLogger { return multiLogger(loggers) }

type multiLogger []AuditLogger

func (m multiLogger) LogEvent(ctx context.Context, orgID, employeeID, action, resource, metadata string) {
	for _, l := range m {
		if l != nil {
			l.LogEvent(ctx, orgID, employeeID, action, resource, metadata)
		}
	}
}
