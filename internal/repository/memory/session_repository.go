package memory

import (
	"sync"
	"time"

	"routine-advisor-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live widget sessions. Entries expire after ttl of
// inactivity; every lookup slides the expiry.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// purge expired items every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		ttl:   ttl,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		session := x.(*store.Session)
		r.cache.Set(sessionID, session, cache.DefaultExpiration)
		return session, true
	}
	return nil, false
}

// GetOrCreate returns the live session or stores the one built by create.
// create runs without the repository lock. When two callers race, the first stored session wins and
// created is false for the loser.
func (r *SessionRepository) GetOrCreate(sessionID string, create func() *store.Session) (session *store.Session, created bool) {
	if s, ok := r.Get(sessionID); ok {
		return s, false
	}

	s := create()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.Get(sessionID); ok {
		return existing, false
	}
	r.Save(s)
	return s, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
