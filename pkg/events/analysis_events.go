package events

import (
	"time"

	"github.com/google/uuid"
)

func NewAnalysisStarted(sessionID uuid.UUID, archiveName string) Event {
	return BaseEvent{
		Type: "ANALYSIS_STARTED",
		Data: map[string]interface{}{
			"session_id":   sessionID.String(),
			"archive_name": archiveName,
		},
		OccurredAt: time.Now(),
	}
}

func NewAnalysisCompleted(sessionID uuid.UUID, reportName string, reportSize int) Event {
	return BaseEvent{
		Type: "ANALYSIS_COMPLETED",
		Data: map[string]interface{}{
			"session_id":  sessionID.String(),
			"report_name": reportName,
			"report_size": reportSize,
		},
		OccurredAt: time.Now(),
	}
}

func NewAnalysisFailed(sessionID uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: "ANALYSIS_FAILED",
		Data: map[string]interface{}{
			"session_id": sessionID.String(),
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionReset(sessionID uuid.UUID) Event {
	return BaseEvent{
		Type: "SESSION_RESET",
		Data: map[string]interface{}{
			"session_id": sessionID.String(),
		},
		OccurredAt: time.Now(),
	}
}
