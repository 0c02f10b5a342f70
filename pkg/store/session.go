package store

import "github.com/google/uuid"

// AnalysisSession is the in-memory state of one browser session. At most one
// archive handle and one report are live at a time: a re-run replaces them,
// it never appends to history.
type AnalysisSession struct {
	ID uuid.UUID `json:"id"`

	// Remote handles
	ThreadID      string `json:"thread_id"`
	ArchiveFileID string `json:"archive_file_id"`
	ArchiveName   string `json:"archive_name"`
	ReportFileID  string `json:"report_file_id"`

	// Extracted artifact
	ReportBytes []byte `json:"report_bytes"`
	ReportName  string `json:"report_name"`

	RunFinished bool `json:"run_finished"`
}

// HasReport reports whether a generated report is bound to the session.
func (s *AnalysisSession) HasReport() bool {
	return s.RunFinished && len(s.ReportBytes) > 0
}
