package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mawuli2121/Priya-Project/pkg/assistant"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Client implements assistant.ResourceClient on top of the official OpenAI
// Go SDK (Assistants API with the code_interpreter tool).
type Client struct {
	api openai.Client
}

var _ assistant.ResourceClient = (*Client)(nil)

func NewClient(apiKey string) *Client {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &Client{
		api: openai.NewClient(opts...),
	}
}

func (c *Client) CreateAssistant(ctx context.Context, cfg assistant.Config) (string, error) {
	asst, err := c.api.Beta.Assistants.New(ctx, openai.BetaAssistantNewParams{
		Model:        shared.ChatModel(cfg.Model),
		Name:         openai.String(cfg.Name),
		Temperature:  openai.Float(cfg.Temperature),
		Instructions: openai.String(cfg.Instructions),
		Tools: []openai.AssistantToolUnionParam{
			{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	return asst.ID, nil
}

func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

func (c *Client) RetrieveThread(ctx context.Context, threadID string) (string, error) {
	thread, err := c.api.Beta.Threads.Get(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("retrieve thread %s: %w", threadID, err)
	}
	return thread.ID, nil
}

func (c *Client) UpdateThreadToolResources(ctx context.Context, threadID string, fileIDs []string) error {
	_, err := c.api.Beta.Threads.Update(ctx, threadID, openai.BetaThreadUpdateParams{
		ToolResources: openai.BetaThreadUpdateParamsToolResources{
			CodeInterpreter: openai.BetaThreadUpdateParamsToolResourcesCodeInterpreter{
				FileIDs: fileIDs,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("update thread tool resources: %w", err)
	}
	return nil
}

func (c *Client) CreateMessage(ctx context.Context, threadID, role, content string) error {
	msgRole := openai.BetaThreadMessageNewParamsRoleUser
	if role == assistant.MessageRoleAssistant {
		msgRole = openai.BetaThreadMessageNewParamsRoleAssistant
	}
	_, err := c.api.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: msgRole,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (c *Client) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	file, err := c.api.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(bytes.NewReader(data), filename, "application/zip"),
		Purpose: openai.FilePurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("upload file %s: %w", filename, err)
	}
	return file.ID, nil
}

func (c *Client) StreamRun(ctx context.Context, threadID, assistantID string, onFragment assistant.TextFragmentFunc) (assistant.RunStatus, error) {
	stream := c.api.Beta.Threads.Runs.NewStreaming(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
		ToolChoice: openai.AssistantToolChoiceOptionUnionParam{
			OfAssistantToolChoice: &openai.AssistantToolChoiceParam{
				Type: openai.AssistantToolChoiceTypeCodeInterpreter,
			},
		},
	})
	defer stream.Close()

	status := assistant.RunIncomplete
	for stream.Next() {
		event := stream.Current()
		switch data := event.Data.AsAny().(type) {
		case openai.MessageDeltaEvent:
			for _, block := range data.Delta.Content {
				if block.Text.Value != "" {
					onFragment(block.Text.Value)
				}
			}
		case openai.Run:
			switch event.Event {
			case "thread.run.completed":
				status = assistant.RunCompleted
			case "thread.run.failed":
				status = assistant.RunFailed
			case "thread.run.cancelled":
				status = assistant.RunCancelled
			case "thread.run.expired":
				status = assistant.RunExpired
			}
		}
	}
	if err := stream.Err(); err != nil {
		return assistant.RunFailed, fmt.Errorf("stream run: %w", err)
	}
	return status, nil
}

func (c *Client) ListMessages(ctx context.Context, threadID string) ([]assistant.ThreadMessage, error) {
	page, err := c.api.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]assistant.ThreadMessage, 0, len(page.Data))
	for _, msg := range page.Data {
		out := assistant.ThreadMessage{
			ID:   msg.ID,
			Role: string(msg.Role),
			Raw:  msg.RawJSON(),
		}
		for _, block := range msg.Content {
			if block.Text.Value != "" {
				out.Text += block.Text.Value
			}
		}
		for _, att := range msg.Attachments {
			out.Attachments = append(out.Attachments, assistant.Attachment{FileID: att.FileID})
		}
		messages = append(messages, out)
	}
	return messages, nil
}

func (c *Client) FileMetadata(ctx context.Context, fileID string) (*assistant.FileInfo, error) {
	file, err := c.api.Files.Get(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("retrieve file %s: %w", fileID, err)
	}
	return &assistant.FileInfo{
		ID:       file.ID,
		Filename: file.Filename,
	}, nil
}

func (c *Client) FileContent(ctx context.Context, fileID string) ([]byte, error) {
	res, err := c.api.Files.Content(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("fetch file content %s: %w", fileID, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read file content %s: %w", fileID, err)
	}
	return data, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if _, err := c.api.Files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return nil
}

func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	if _, err := c.api.Beta.Threads.Delete(ctx, threadID); err != nil {
		return fmt.Errorf("delete thread %s: %w", threadID, err)
	}
	return nil
}
