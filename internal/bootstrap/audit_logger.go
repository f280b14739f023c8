package bootstrap

import "context"

// AuditLog is a single auditable event at the process level (startup,
// shutdown). Domain-level auditing lives in internal/audit.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
