package memory

import (
	"testing"

	"github.com/mawuli2121/Priya-Project/pkg/store"

	"github.com/google/uuid"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	if _, found := repo.Get(id); found {
		t.Fatal("expected empty repository")
	}

	session := &store.AnalysisSession{ID: id, ThreadID: "thread_1"}
	repo.Save(session)

	got, found := repo.Get(id)
	if !found {
		t.Fatal("session not found after Save")
	}
	if got.ThreadID != "thread_1" {
		t.Errorf("ThreadID = %q, want thread_1", got.ThreadID)
	}

	repo.Delete(id)
	if _, found := repo.Get(id); found {
		t.Error("session still present after Delete")
	}
}

func TestGetOrCreateBindsID(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	session := repo.GetOrCreate(id)
	if session.ID != id {
		t.Fatalf("ID = %s, want %s", session.ID, id)
	}
	if session.ThreadID != "" || session.RunFinished || session.ReportBytes != nil {
		t.Error("fresh session is not empty")
	}

	session.ThreadID = "thread_2"
	repo.Save(session)

	again := repo.GetOrCreate(id)
	if again.ThreadID != "thread_2" {
		t.Error("GetOrCreate did not return the stored session")
	}
}
