package service

import (
	"context"

	"github.com/mawuli2121/Priya-Project/internal/dto"
	"github.com/mawuli2121/Priya-Project/internal/pkg/mailer"
	"github.com/mawuli2121/Priya-Project/internal/repository/memory"
	"github.com/mawuli2121/Priya-Project/pkg/assistant"
	"github.com/mawuli2121/Priya-Project/pkg/store"

	"github.com/google/uuid"
)

type IReportService interface {
	Preview(sessionID uuid.UUID) (*dto.ReportPreviewResponse, error)
	Download(sessionID uuid.UUID) (*store.AnalysisSession, error)
	Email(ctx context.Context, sessionID uuid.UUID, to string) error
}

type reportService struct {
	sessions *memory.SessionRepository
	mailer   mailer.IEmailService
}

func NewReportService(sessions *memory.SessionRepository, emailService mailer.IEmailService) IReportService {
	return &reportService{
		sessions: sessions,
		mailer:   emailService,
	}
}

func (s *reportService) Preview(sessionID uuid.UUID) (*dto.ReportPreviewResponse, error) {
	session, err := s.reportSession(sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.ReportPreviewResponse{
		ReportName: session.ReportName,
		Markdown:   string(session.ReportBytes),
	}, nil
}

func (s *reportService) Download(sessionID uuid.UUID) (*store.AnalysisSession, error) {
	return s.reportSession(sessionID)
}

func (s *reportService) Email(ctx context.Context, sessionID uuid.UUID, to string) error {
	session, err := s.reportSession(sessionID)
	if err != nil {
		return err
	}
	return s.mailer.SendReport(to, session.ReportName, session.ReportBytes)
}

func (s *reportService) reportSession(sessionID uuid.UUID) (*store.AnalysisSession, error) {
	session, found := s.sessions.Get(sessionID)
	if !found || !session.HasReport() {
		return nil, assistant.ErrReportNotFound
	}
	return session, nil
}
