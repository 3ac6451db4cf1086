// Package sessions keeps the live gesture sessions served over JSON-RPC.
package sessions

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/ghostcli/overlay"
	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
	"github.com/sirupsen/logrus"
)

const DefaultMaxSessions = 64

// Session pairs a consumer with the collaborators it drives. Touch events
// for one session are processed strictly one at a time.
type Session struct {
	ID      string
	Kind    string
	Created time.Time

	mu       sync.Mutex
	consumer overlay.Consumer
	events   int
	intents  int
}

func NewSession(kind string, consumer overlay.Consumer) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Kind:     kind,
		Created:  time.Now(),
		consumer: consumer,
	}
}

// Touch feeds events to the consumer in order and returns every intent produced.
func (s *Session) Touch(events []types.TouchEvent) []types.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	intents := []types.Intent{}
	for _, ev := range events {
		intents = append(intents, s.consumer.HandleTouch(ev)...)
	}
	s.events += len(events)
	s.intents += len(intents)
	return intents
}

// Do runs fn with exclusive access to the consumer.
func (s *Session) Do(fn func(c overlay.Consumer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.consumer)
}

// Info summarizes a session.
type Info struct {
	ID      string      `json:"id"`
	Kind    string      `json:"kind"`
	Created time.Time   `json:"created"`
	Events  int         `json:"events"`
	Intents int         `json:"intents"`
	State   interface{} `json:"state"`
}

func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:      s.ID,
		Kind:    s.Kind,
		Created: s.Created,
		Events:  s.events,
		Intents: s.intents,
		State:   s.consumer.State(),
	}
}

// Store is a bounded set of sessions; the least recently used session is
// evicted when the bound is reached.
type Store struct {
	cache *lru.Cache[string, *Session]
}

func NewStore(maxSessions int) (*Store, error) {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}

	cache, err := lru.NewWithEvict(maxSessions, func(id string, s *Session) {
		utils.WithFields(logrus.Fields{"session": id, "kind": s.Kind}).Debug("session released")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	return &Store{cache: cache}, nil
}

// Add registers a session.
func (st *Store) Add(s *Session) {
	if evicted := st.cache.Add(s.ID, s); evicted {
		utils.Info("session limit reached, evicted least recently used session")
	}
}

func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return s, nil
}

// Close removes a session and reports whether it existed.
func (st *Store) Close(id string) bool {
	return st.cache.Remove(id)
}

func (st *Store) Len() int {
	return st.cache.Len()
}

// List returns every live session, oldest first.
func (st *Store) List() []Info {
	infos := []Info{}
	for _, s := range st.cache.Values() {
		infos = append(infos, s.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Created.Before(infos[j].Created)
	})
	return infos
}

// CloseAll drops every session.
func (st *Store) CloseAll() {
	st.cache.Purge()
}
