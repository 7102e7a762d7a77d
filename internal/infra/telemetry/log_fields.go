package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldSlot       = "slot"
	FieldSessionID  = "session_id"
	FieldToolID     = "tool_id"
	FieldDurationMs = "duration_ms"
	FieldLogSource  = "log_source"
	FieldPath       = "path"
)

const (
	EventSlotFallback     = "slot_fallback"
	EventSlotWriteFailed  = "slot_write_failed"
	EventImportApplied    = "import_applied"
	EventImportRejected   = "import_rejected"
	EventCatalogReplaced  = "catalog_replaced"
	EventFeedChanged      = "feed_changed"
	EventFavoriteToggled  = "favorite_toggled"
	EventQueryCleared     = "query_cleared"
	EventSessionRestored  = "session_restored"
	EventPreferencesReset = "preferences_reset"
)

const (
	LogSourceCore = "core"
	LogSourceCLI  = "cli"
	LogSourceMCP  = "mcp"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func SlotField(slot string) zap.Field {
	return zap.String(FieldSlot, slot)
}

func SessionIDField(id string) zap.Field {
	return zap.String(FieldSessionID, id)
}

func ToolIDField(id string) zap.Field {
	return zap.String(FieldToolID, id)
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}
