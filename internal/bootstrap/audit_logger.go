package bootstrap

import "context"

// AuditLog adalah entry audit level proses (startup/shutdown), bukan audit domain.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
