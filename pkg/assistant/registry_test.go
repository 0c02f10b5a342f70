package assistant

import (
	"context"
	"errors"
	"testing"
)

type creationStub struct {
	ResourceClient
	calls int
	err   error
}

func (s *creationStub) CreateAssistant(_ context.Context, _ Config) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "asst_1", nil
}

func TestRegistryCreatesOnce(t *testing.T) {
	client := &creationStub{}
	registry := NewRegistry(client, Config{Name: "THREATLENS-AI-Agent", Model: "gpt-4.1"})

	first, err := registry.GetOrCreate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := registry.GetOrCreate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("ids differ: %q vs %q", first, second)
	}
	if client.calls != 1 {
		t.Errorf("CreateAssistant called %d times, want 1", client.calls)
	}
}

func TestRegistryPropagatesCreationError(t *testing.T) {
	wantErr := errors.New("boom")
	client := &creationStub{err: wantErr}
	registry := NewRegistry(client, Config{})

	if _, err := registry.GetOrCreate(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	// Failure is not cached
	if _, err := registry.GetOrCreate(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if client.calls != 2 {
		t.Errorf("CreateAssistant called %d times, want 2", client.calls)
	}
}
