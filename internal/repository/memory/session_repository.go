package memory

import (
	"time"

	"github.com/mawuli2121/Priya-Project/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps analysis sessions in process memory. Nothing here
// survives a restart; the remote provider owns the durable side (threads,
// files, assistants).
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for 2 hours are evicted, sweep every 10 minutes
	c := cache.New(2*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.AnalysisSession) {
	r.cache.Set(session.ID.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID uuid.UUID) (*store.AnalysisSession, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		return x.(*store.AnalysisSession), true
	}
	return nil, false
}

// GetOrCreate returns the stored session or a fresh empty one bound to the id.
func (r *SessionRepository) GetOrCreate(sessionID uuid.UUID) *store.AnalysisSession {
	if session, found := r.Get(sessionID); found {
		return session
	}
	session := &store.AnalysisSession{ID: sessionID}
	r.Save(session)
	return session
}

func (r *SessionRepository) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}
