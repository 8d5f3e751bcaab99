package httpapi

import (
	"net/http"

	"timberd/internal/activity"
)

// auditEntry builds an activity-log entry for the current request, taking
// the actor from the session context when one is present.
func auditEntry(r *http.Request, action, entityType, entityID, message string) activity.Entry {
	return activity.Entry{
		UserID:     sessionSubjectRef(r.Context()),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
		IPAddress:  r.RemoteAddr,
	}
}
