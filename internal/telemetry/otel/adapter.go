package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"field-attendance/backend/internal/audit"
)

// NewAuditEmitter returns an audit logger that mirrors audit events to the
// collector as OTel log records. Pair it with the Postgres audit logger via
// audit.Multi so events land in both places. A nil provider yields a no-op.
func NewAuditEmitter(provider *sdklog.LoggerProvider) audit.AuditLogger {
	if provider == nil {
		return audit.Nop()
	}
	return &auditEmitter{logger: provider.Logger("attendance.audit")}
}

type auditEmitter struct {
	logger otellog.Logger
}

func (e *auditEmitter) LogEvent(ctx context.Context, orgID, employeeID, action, resource, metadata string) {
	rec := otellog.Record{}
	rec.SetTimestamp(time.Now().UTC())
	rec.SetBody(otellog.StringValue(action))
	if orgID != "" {
		rec.AddAttributes(otellog.String("org_id", orgID))
	}
	if employeeID != "" {
		rec.AddAttributes(otellog.String("employee_id", employeeID))
	}
	rec.AddAttributes(otellog.String("action", action))
	if resource != "" {
		rec.AddAttributes(otellog.String("resource", resource))
	}
	if metadata != "" {
		rec.AddAttributes(otellog.String("metadata", metadata))
	}
	e.logger.Emit(ctx, rec)
}
