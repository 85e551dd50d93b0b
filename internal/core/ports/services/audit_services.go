package services

import "context"

// AuditSvcFacade records sensitive operations. Log is fire-and-forget: it
// never returns an error and a failed write never aborts the caller.
type AuditSvcFacade interface {
	Log(ctx context.Context, eventType, actorID, subjectID, description string, details map[string]any)
}
