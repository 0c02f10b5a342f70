package assistant

import (
	"context"
)

// Config describes the remote assistant resource. It is built once at
// startup and never mutated afterwards; changing it requires a restart.
type Config struct {
	Name         string
	Model        string
	Temperature  float64
	Instructions string
}

// RunStatus is the terminal state reported by a streamed run.
type RunStatus string

const (
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
	RunCancelled  RunStatus = "cancelled"
	RunExpired    RunStatus = "expired"
	RunIncomplete RunStatus = "incomplete"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Attachment is a file reference carried by a thread message.
type Attachment struct {
	FileID string
}

// ThreadMessage is a provider-agnostic view of one message in a thread.
// Raw holds the provider's own serialized form of the message, used by the
// fallback file-id scan when attachments are missing.
type ThreadMessage struct {
	ID          string
	Role        string
	Text        string
	Raw         string
	Attachments []Attachment
}

// FileInfo is the metadata subset the extractor cares about.
type FileInfo struct {
	ID       string
	Filename string
}

// TextFragmentFunc receives each incremental text delta of a streamed run.
type TextFragmentFunc func(delta string)

// ResourceClient is the capability set the orchestrator needs from the
// hosted assistant provider. The concrete transport lives in subpackages.
type ResourceClient interface {
	CreateAssistant(ctx context.Context, cfg Config) (string, error)
	CreateThread(ctx context.Context) (string, error)
	RetrieveThread(ctx context.Context, threadID string) (string, error)
	UpdateThreadToolResources(ctx context.Context, threadID string, fileIDs []string) error
	CreateMessage(ctx context.Context, threadID, role, content string) error
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)
	StreamRun(ctx context.Context, threadID, assistantID string, onFragment TextFragmentFunc) (RunStatus, error)
	ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error)
	FileMetadata(ctx context.Context, fileID string) (*FileInfo, error)
	FileContent(ctx context.Context, fileID string) ([]byte, error)
	DeleteFile(ctx context.Context, fileID string) error
	DeleteThread(ctx context.Context, threadID string) error
}
