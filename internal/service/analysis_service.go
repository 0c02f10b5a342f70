package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mawuli2121/Priya-Project/internal/constant"
	"github.com/mawuli2121/Priya-Project/internal/dto"
	"github.com/mawuli2121/Priya-Project/internal/pkg/logger"
	"github.com/mawuli2121/Priya-Project/internal/repository/memory"
	"github.com/mawuli2121/Priya-Project/pkg/assistant"
	"github.com/mawuli2121/Priya-Project/pkg/events"
	"github.com/mawuli2121/Priya-Project/pkg/store"

	"github.com/google/uuid"
)

// StreamSink receives the live analysis text for a session. SendText always
// carries the complete text-so-far, never a bare delta.
type StreamSink interface {
	SendText(sessionID uuid.UUID, fullText string)
	SendDone(sessionID uuid.UUID, reportName string)
	SendError(sessionID uuid.UUID, message string)
}

type IAnalysisService interface {
	RunAnalysis(ctx context.Context, sessionID uuid.UUID, archive []byte, archiveName, prompt string) (*dto.RunAnalysisResponse, error)
	Session(sessionID uuid.UUID) *store.AnalysisSession
	Reset(ctx context.Context, sessionID uuid.UUID) error
}

// analysisService drives one complete analyse-repository cycle against the
// hosted assistant: upload, thread create-or-reuse, attach, message,
// streamed run, report extraction, fetch.
type analysisService struct {
	client    assistant.ResourceClient
	registry  *assistant.Registry
	sessions  *memory.SessionRepository
	sink      StreamSink
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAnalysisService(
	client assistant.ResourceClient,
	registry *assistant.Registry,
	sessions *memory.SessionRepository,
	sink StreamSink,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IAnalysisService {
	return &analysisService{
		client:    client,
		registry:  registry,
		sessions:  sessions,
		sink:      sink,
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (s *analysisService) RunAnalysis(ctx context.Context, sessionID uuid.UUID, archive []byte, archiveName, prompt string) (*dto.RunAnalysisResponse, error) {
	assistantID, err := s.registry.GetOrCreate(ctx)
	if err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("assistant unavailable: %w", err))
	}

	session := s.sessions.GetOrCreate(sessionID)
	s.publishEvent(ctx, events.NewAnalysisStarted(sessionID, archiveName))

	// 1. Upload the archive. The previous handle is superseded, not
	// deleted; cleanup happens on explicit reset.
	fileID, err := s.client.UploadFile(ctx, archiveName, archive)
	if err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("upload archive: %w", err))
	}
	session.ArchiveFileID = fileID
	session.ArchiveName = archiveName
	s.sessions.Save(session)

	// 2. Create the thread on first run, reuse it afterwards so follow-up
	// prompts keep the conversation context.
	if session.ThreadID == "" {
		threadID, err := s.client.CreateThread(ctx)
		if err != nil {
			return nil, s.fail(ctx, sessionID, fmt.Errorf("create thread: %w", err))
		}
		session.ThreadID = threadID
		s.sessions.Save(session)
	} else {
		if _, err := s.client.RetrieveThread(ctx, session.ThreadID); err != nil {
			return nil, s.fail(ctx, sessionID, fmt.Errorf("retrieve thread: %w", err))
		}
	}

	// 3. Attach the archive to the code-interpreter tool, replacing any
	// previously attached file list.
	if err := s.client.UpdateThreadToolResources(ctx, session.ThreadID, []string{fileID}); err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("attach archive to thread: %w", err))
	}

	// 4. Post the analysis prompt.
	if err := s.client.CreateMessage(ctx, session.ThreadID, assistant.MessageRoleUser, prompt); err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("post message: %w", err))
	}

	// 5. Streamed run. Every fragment extends the buffer and the full
	// buffer is pushed to the sink, so clients never need backfill.
	var buffer strings.Builder
	status, err := s.client.StreamRun(ctx, session.ThreadID, assistantID, func(delta string) {
		buffer.WriteString(delta)
		s.sink.SendText(sessionID, buffer.String())
	})
	if err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("streamed run: %w", err))
	}
	if status != assistant.RunCompleted {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("assistant run ended with status %q", status))
	}

	// 6. Locate the generated Markdown report.
	messages, err := s.client.ListMessages(ctx, session.ThreadID)
	if err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("list messages: %w", err))
	}
	reportFileID, err := assistant.FindReportFile(ctx, s.client, messages)
	if err != nil {
		// Run succeeded but produced no file. Distinct condition, report
		// fields stay untouched.
		s.sink.SendError(sessionID, "No Markdown report was found in the assistant messages.")
		s.publishEvent(ctx, events.NewAnalysisFailed(sessionID, "report_not_found"))
		return nil, err
	}

	// 7. Fetch the report bytes and bind them under the canonical name.
	content, err := s.client.FileContent(ctx, reportFileID)
	if err != nil {
		return nil, s.fail(ctx, sessionID, fmt.Errorf("fetch report content: %w", err))
	}

	session.ReportFileID = reportFileID
	session.ReportBytes = content
	session.ReportName = constant.ReportFileName
	session.RunFinished = true
	s.sessions.Save(session)

	s.sink.SendDone(sessionID, session.ReportName)
	s.publishEvent(ctx, events.NewAnalysisCompleted(sessionID, session.ReportName, len(content)))

	return &dto.RunAnalysisResponse{
		ReportReady: true,
		ReportName:  session.ReportName,
	}, nil
}

func (s *analysisService) Session(sessionID uuid.UUID) *store.AnalysisSession {
	return s.sessions.GetOrCreate(sessionID)
}

// Reset issues best-effort deletions for the uploaded archive, the generated
// report file and the thread, then clears local state. Deletion failures are
// logged and swallowed, they never block the clear.
func (s *analysisService) Reset(ctx context.Context, sessionID uuid.UUID) error {
	session, found := s.sessions.Get(sessionID)
	if found {
		if session.ArchiveFileID != "" {
			if err := s.client.DeleteFile(ctx, session.ArchiveFileID); err != nil {
				s.logger.Warn("AnalysisService", "Cleanup: delete archive failed", map[string]interface{}{"error": err.Error()})
			}
		}
		if session.ReportFileID != "" {
			if err := s.client.DeleteFile(ctx, session.ReportFileID); err != nil {
				s.logger.Warn("AnalysisService", "Cleanup: delete report failed", map[string]interface{}{"error": err.Error()})
			}
		}
		if session.ThreadID != "" {
			if err := s.client.DeleteThread(ctx, session.ThreadID); err != nil {
				s.logger.Warn("AnalysisService", "Cleanup: delete thread failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	s.sessions.Delete(sessionID)
	s.publishEvent(ctx, events.NewSessionReset(sessionID))
	return nil
}

// fail surfaces a provider error: the run aborts, session state is left
// as-is for inspection, the sink gets a terminal error frame.
func (s *analysisService) fail(ctx context.Context, sessionID uuid.UUID, err error) error {
	s.logger.Error("AnalysisService", "Run aborted", map[string]interface{}{
		"session_id": sessionID.String(),
		"error":      err.Error(),
	})
	s.sink.SendError(sessionID, err.Error())
	s.publishEvent(ctx, events.NewAnalysisFailed(sessionID, err.Error()))
	return err
}

func (s *analysisService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("AnalysisService", "Event publish failed", map[string]interface{}{"error": err.Error()})
	}
}
