package events

import (
	"encoding/json"
	"log/slog"
)

// eventEnvelope is used for initial JSON parsing to determine event type.
type eventEnvelope struct {
	Type EventType `json:"type"`
}

// ParseEvent decodes a journal line into a typed Event.
// Unknown types return nil with no error so older binaries can read newer journals.
func ParseEvent(line []byte) (Event, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, err
	}

	var ev Event
	switch envelope.Type {
	case EventSessionStart:
		ev = &SessionStartEvent{}
	case EventSessionEnd:
		ev = &SessionEndEvent{}
	case EventScreenChanged:
		ev = &ScreenChangedEvent{}
	case EventStepCycled:
		ev = &StepCycledEvent{}
	case EventToolchainRun:
		ev = &ToolchainRunEvent{}
	case EventLogCleared:
		ev = &LogClearedEvent{}
	case EventValidationRun:
		ev = &ValidationRunEvent{}
	case EventSnapshotStored:
		ev = &SnapshotStoredEvent{}
	case EventVaultPurged:
		ev = &VaultPurgedEvent{}
	case EventError:
		ev = &ErrorEvent{}
	default:
		slog.Debug("skipping unknown journal event", "type", envelope.Type)
		return nil, nil
	}

	if err := json.Unmarshal(line, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
