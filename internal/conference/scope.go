package conference

import "github.com/JonMunkholm/codemash/internal/store"

const (
	scopeField      = "event"
	eventScopeField = "id"
)

// BelongsToInstance reports whether rec[field] is the configured instance id.
// An empty field name means the usual "event" scope field.
func BelongsToInstance(rec store.Record, field string) bool {
	if field == "" {
		field = scopeField
	}
	return rec.Equals(field, InstanceID)
}

// inScope is BelongsToInstance on the "event" field.
func inScope(rec store.Record) bool {
	return BelongsToInstance(rec, scopeField)
}
