package assistant

import (
	"context"
	"regexp"
	"strings"
)

// fileIDPattern matches the provider's file identifier format. This is a
// best-effort heuristic for messages that reference a produced file without
// carrying a proper attachment.
var fileIDPattern = regexp.MustCompile(`file-(?:[a-zA-Z0-9]+)`)

// FindReportFile resolves the file id of the Markdown report produced by a
// run. Messages are scanned in the order the provider returned them
// (newest first). Attachments win over the raw-text fallback: only when no
// message carries a .md attachment does the scan fall back to searching each
// message's raw form for a file-id token.
func FindReportFile(ctx context.Context, client ResourceClient, messages []ThreadMessage) (string, error) {
	for _, msg := range messages {
		for _, att := range msg.Attachments {
			if att.FileID == "" {
				continue
			}
			info, err := client.FileMetadata(ctx, att.FileID)
			if err != nil {
				// Metadata lookup failures don't abort the scan, the
				// report may sit on a later message.
				continue
			}
			if strings.HasSuffix(info.Filename, ".md") {
				return att.FileID, nil
			}
		}
	}

	for _, msg := range messages {
		if match := fileIDPattern.FindString(msg.Raw); match != "" {
			return match, nil
		}
	}

	return "", ErrReportNotFound
}
