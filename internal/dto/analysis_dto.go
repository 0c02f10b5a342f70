package dto

type RunAnalysisResponse struct {
	ReportReady bool   `json:"report_ready"`
	ReportName  string `json:"report_name"`
}

type SessionInfoResponse struct {
	SessionID   string `json:"session_id"`
	StreamToken string `json:"stream_token"`
	ThreadID    string `json:"thread_id,omitempty"`
	ArchiveName string `json:"archive_name,omitempty"`
	RunFinished bool   `json:"run_finished"`
	HasReport   bool   `json:"has_report"`
}

type ReportPreviewResponse struct {
	ReportName string `json:"report_name"`
	Markdown   string `json:"markdown"`
}

type EmailReportRequest struct {
	To string `json:"to" validate:"required,email"`
}

// AnalysisEventMessage is the payload carried on the in-process event bus.
type AnalysisEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt string                 `json:"occurred_at"`
}
