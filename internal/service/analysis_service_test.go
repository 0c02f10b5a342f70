package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mawuli2121/Priya-Project/internal/constant"
	"github.com/mawuli2121/Priya-Project/internal/repository/memory"
	"github.com/mawuli2121/Priya-Project/pkg/assistant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeResourceClient is a scriptable in-memory provider.
type fakeResourceClient struct {
	fragments []string
	runStatus assistant.RunStatus
	messages  []assistant.ThreadMessage
	files     map[string]*assistant.FileInfo
	contents  map[string][]byte

	uploadErr error
	deleteErr error

	uploads          int
	threadsCreated   int
	threadsRetrieved []string
	deletedFiles     []string
	deletedThreads   []string
	attachedFileIDs  [][]string
	postedMessages   []string
}

func newFakeClient() *fakeResourceClient {
	return &fakeResourceClient{
		runStatus: assistant.RunCompleted,
		files:     map[string]*assistant.FileInfo{},
		contents:  map[string][]byte{},
	}
}

func (f *fakeResourceClient) CreateAssistant(context.Context, assistant.Config) (string, error) {
	return "asst_test", nil
}

func (f *fakeResourceClient) CreateThread(context.Context) (string, error) {
	f.threadsCreated++
	return "thread_test", nil
}

func (f *fakeResourceClient) RetrieveThread(_ context.Context, threadID string) (string, error) {
	f.threadsRetrieved = append(f.threadsRetrieved, threadID)
	return threadID, nil
}

func (f *fakeResourceClient) UpdateThreadToolResources(_ context.Context, _ string, fileIDs []string) error {
	f.attachedFileIDs = append(f.attachedFileIDs, fileIDs)
	return nil
}

func (f *fakeResourceClient) CreateMessage(_ context.Context, _, _, content string) error {
	f.postedMessages = append(f.postedMessages, content)
	return nil
}

func (f *fakeResourceClient) UploadFile(context.Context, string, []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return "file-upload" + string(rune('0'+f.uploads)), nil
}

func (f *fakeResourceClient) StreamRun(_ context.Context, _, _ string, onFragment assistant.TextFragmentFunc) (assistant.RunStatus, error) {
	for _, fragment := range f.fragments {
		onFragment(fragment)
	}
	return f.runStatus, nil
}

func (f *fakeResourceClient) ListMessages(context.Context, string) ([]assistant.ThreadMessage, error) {
	return f.messages, nil
}

func (f *fakeResourceClient) FileMetadata(_ context.Context, fileID string) (*assistant.FileInfo, error) {
	info, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return info, nil
}

func (f *fakeResourceClient) FileContent(_ context.Context, fileID string) ([]byte, error) {
	content, ok := f.contents[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return content, nil
}

func (f *fakeResourceClient) DeleteFile(_ context.Context, fileID string) error {
	f.deletedFiles = append(f.deletedFiles, fileID)
	return f.deleteErr
}

func (f *fakeResourceClient) DeleteThread(_ context.Context, threadID string) error {
	f.deletedThreads = append(f.deletedThreads, threadID)
	return f.deleteErr
}

// recordingSink captures every snapshot pushed during a run.
type recordingSink struct {
	texts  []string
	done   []string
	errors []string
}

func (r *recordingSink) SendText(_ uuid.UUID, fullText string) { r.texts = append(r.texts, fullText) }
func (r *recordingSink) SendDone(_ uuid.UUID, name string)     { r.done = append(r.done, name) }
func (r *recordingSink) SendError(_ uuid.UUID, msg string)     { r.errors = append(r.errors, msg) }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(client *fakeResourceClient) (IAnalysisService, *memory.SessionRepository, *recordingSink) {
	registry := assistant.NewRegistry(client, assistant.Config{Name: constant.AssistantName})
	sessions := memory.NewSessionRepository()
	sink := &recordingSink{}
	svc := NewAnalysisService(client, registry, sessions, sink, nil, nopLogger{})
	return svc, sessions, sink
}

func scriptReport(client *fakeResourceClient, fileID string, content []byte) {
	client.messages = []assistant.ThreadMessage{
		{ID: "msg_1", Role: "assistant", Attachments: []assistant.Attachment{{FileID: fileID}}},
	}
	client.files[fileID] = &assistant.FileInfo{ID: fileID, Filename: "report.md"}
	client.contents[fileID] = content
}

func TestRunAnalysisStreamsAndExtractsReport(t *testing.T) {
	client := newFakeClient()
	client.fragments = []string{"# Report\n", "## Summary\n"}
	fixture := []byte("# Report\n## Summary\nAll clear.\n")
	scriptReport(client, "file-report1", fixture)

	svc, sessions, sink := newTestService(client)
	sessionID := uuid.New()

	res, err := svc.RunAnalysis(context.Background(), sessionID, []byte("zipbytes"), "demo.zip", constant.DefaultPrompt)
	assert.NoError(t, err)
	assert.True(t, res.ReportReady)
	assert.Equal(t, "Medical-Diagnosis-Project-Report.md", res.ReportName)

	// The sink always receives the full text-so-far, never a bare delta.
	assert.Equal(t, []string{"# Report\n", "# Report\n## Summary\n"}, sink.texts)
	assert.Equal(t, []string{"Medical-Diagnosis-Project-Report.md"}, sink.done)

	session, found := sessions.Get(sessionID)
	assert.True(t, found)
	assert.Equal(t, "thread_test", session.ThreadID)
	assert.Equal(t, fixture, session.ReportBytes)
	assert.Equal(t, "file-report1", session.ReportFileID)
	assert.True(t, session.RunFinished)
	assert.Equal(t, constant.DefaultPrompt, client.postedMessages[0])
}

func TestSecondRunReusesThreadAndReplacesArtifacts(t *testing.T) {
	client := newFakeClient()
	scriptReport(client, "file-report1", []byte("first"))

	svc, sessions, _ := newTestService(client)
	sessionID := uuid.New()

	_, err := svc.RunAnalysis(context.Background(), sessionID, []byte("zip1"), "demo.zip", "analyse")
	assert.NoError(t, err)
	first, _ := sessions.Get(sessionID)
	firstArchive := first.ArchiveFileID

	scriptReport(client, "file-report2", []byte("second"))
	_, err = svc.RunAnalysis(context.Background(), sessionID, []byte("zip2"), "demo2.zip", "analyse again")
	assert.NoError(t, err)

	session, _ := sessions.Get(sessionID)
	assert.Equal(t, 1, client.threadsCreated, "thread identity must be stable across runs")
	assert.Equal(t, []string{"thread_test"}, client.threadsRetrieved)
	assert.NotEqual(t, firstArchive, session.ArchiveFileID, "archive handle must be replaced")
	assert.Equal(t, []byte("second"), session.ReportBytes)
	assert.Equal(t, "demo2.zip", session.ArchiveName)
}

func TestRunAnalysisReportNotFound(t *testing.T) {
	client := newFakeClient()
	client.messages = []assistant.ThreadMessage{
		{ID: "msg_1", Role: "assistant", Raw: `{"text":"no identifiers here"}`},
	}

	svc, sessions, sink := newTestService(client)
	sessionID := uuid.New()

	_, err := svc.RunAnalysis(context.Background(), sessionID, []byte("zip"), "demo.zip", "analyse")
	assert.ErrorIs(t, err, assistant.ErrReportNotFound)

	session, _ := sessions.Get(sessionID)
	assert.Empty(t, session.ReportBytes)
	assert.Empty(t, session.ReportFileID)
	assert.False(t, session.RunFinished)
	assert.NotEmpty(t, sink.errors)
}

func TestRunAnalysisProviderErrorAborts(t *testing.T) {
	client := newFakeClient()
	client.uploadErr = errors.New("upstream down")

	svc, _, sink := newTestService(client)

	_, err := svc.RunAnalysis(context.Background(), uuid.New(), []byte("zip"), "demo.zip", "analyse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upload archive")
	assert.Len(t, sink.errors, 1)
}

func TestRunAnalysisFailedStatusIsError(t *testing.T) {
	client := newFakeClient()
	client.runStatus = assistant.RunFailed

	svc, _, _ := newTestService(client)

	_, err := svc.RunAnalysis(context.Background(), uuid.New(), []byte("zip"), "demo.zip", "analyse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestResetClearsStateDespiteDeleteErrors(t *testing.T) {
	client := newFakeClient()
	scriptReport(client, "file-report1", []byte("content"))

	svc, sessions, _ := newTestService(client)
	sessionID := uuid.New()

	_, err := svc.RunAnalysis(context.Background(), sessionID, []byte("zip"), "demo.zip", "analyse")
	assert.NoError(t, err)

	client.deleteErr = errors.New("quota service down")
	assert.NoError(t, svc.Reset(context.Background(), sessionID))

	_, found := sessions.Get(sessionID)
	assert.False(t, found, "session must be cleared even when remote deletes fail")
	assert.Len(t, client.deletedFiles, 2, "archive and report deletion attempted")
	assert.Equal(t, []string{"thread_test"}, client.deletedThreads)

	// A fresh session after reset behaves like a brand-new one.
	fresh := svc.Session(sessionID)
	assert.Empty(t, fresh.ThreadID)
	assert.False(t, fresh.RunFinished)
}

func TestStreamAccumulationIsPrefixConsistent(t *testing.T) {
	client := newFakeClient()
	client.fragments = []string{"a", "b", "c", "d"}
	scriptReport(client, "file-report1", []byte("x"))

	svc, _, sink := newTestService(client)

	_, err := svc.RunAnalysis(context.Background(), uuid.New(), []byte("zip"), "demo.zip", "analyse")
	assert.NoError(t, err)

	for i, snapshot := range sink.texts {
		want := strings.Join(client.fragments[:i+1], "")
		assert.Equal(t, want, snapshot)
	}
}
