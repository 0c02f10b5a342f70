package assistant

import (
	"context"
	"errors"
	"testing"
)

// metadataStub only answers FileMetadata; the extractor touches nothing else.
type metadataStub struct {
	ResourceClient
	files map[string]string // file id -> filename
}

func (s *metadataStub) FileMetadata(_ context.Context, fileID string) (*FileInfo, error) {
	name, ok := s.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return &FileInfo{ID: fileID, Filename: name}, nil
}

func TestFindReportFile(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		messages []ThreadMessage
		want     string
		wantErr  bool
	}{
		{
			name:  "markdown attachment",
			files: map[string]string{"file-abc123": "report.md"},
			messages: []ThreadMessage{
				{ID: "msg_1", Attachments: []Attachment{{FileID: "file-abc123"}}},
			},
			want: "file-abc123",
		},
		{
			name:  "attachment preferred over raw fallback",
			files: map[string]string{"file-attached1": "report.md"},
			messages: []ThreadMessage{
				{ID: "msg_1", Raw: `{"text":"see file-rawonly99"}`},
				{ID: "msg_2", Attachments: []Attachment{{FileID: "file-attached1"}}},
			},
			want: "file-attached1",
		},
		{
			name:  "non markdown attachments fall through to raw scan",
			files: map[string]string{"file-zip1": "input.zip"},
			messages: []ThreadMessage{
				{ID: "msg_1", Attachments: []Attachment{{FileID: "file-zip1"}}},
				{ID: "msg_2", Raw: `{"attachments":[],"text":"wrote file-Xy9z to disk"}`},
			},
			want: "file-Xy9z",
		},
		{
			name:  "metadata failure skips to later message",
			files: map[string]string{"file-good1": "analysis.md"},
			messages: []ThreadMessage{
				{ID: "msg_1", Attachments: []Attachment{{FileID: "file-gone"}}},
				{ID: "msg_2", Attachments: []Attachment{{FileID: "file-good1"}}},
			},
			want: "file-good1",
		},
		{
			name: "empty attachment id ignored",
			messages: []ThreadMessage{
				{ID: "msg_1", Attachments: []Attachment{{FileID: ""}}},
			},
			wantErr: true,
		},
		{
			name: "nothing found",
			messages: []ThreadMessage{
				{ID: "msg_1", Raw: `{"text":"no identifiers here"}`},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &metadataStub{files: tt.files}
			got, err := FindReportFile(context.Background(), client, tt.messages)

			if tt.wantErr {
				if !errors.Is(err, ErrReportNotFound) {
					t.Fatalf("err = %v, want ErrReportNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("file id = %q, want %q", got, tt.want)
			}
		})
	}
}
