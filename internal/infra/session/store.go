// Package session keeps per-browser state: the pipeline filter criteria and
// the half-filled lead form. State is in memory and expires after a period
// without use.
package session

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/pipeline"
)

const defaultSize = 10_000

type state struct {
	criteria pipeline.Criteria
	draft    *entity.LeadForm
}

type Store struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, state]
}

func NewStore(ttl time.Duration, size int) *Store {
	if size <= 0 {
		size = defaultSize
	}
	return &Store{lru: expirable.NewLRU[string, state](size, nil, ttl)}
}

// load returns the session state and restarts its expiry. Callers hold mu.
func (s *Store) load(sid string) (state, bool) {
	st, ok := s.lru.Get(sid)
	if !ok {
		return state{criteria: pipeline.DefaultCriteria()}, false
	}
	s.lru.Add(sid, st)
	return st, true
}

// Criteria returns the session's criteria, or the defaults for an unknown
// session.
func (s *Store) Criteria(sid string) pipeline.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _ := s.load(sid)
	return st.criteria
}

func (s *Store) SaveCriteria(sid string, c pipeline.Criteria) {
	if sid == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _ := s.load(sid)
	st.criteria = c
	s.lru.Add(sid, st)
}

func (s *Store) ResetCriteria(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.load(sid)
	if !ok {
		return
	}
	st.criteria = pipeline.DefaultCriteria()
	s.lru.Add(sid, st)
}

// Draft returns a copy of the saved lead form.
func (s *Store) Draft(sid string) (*entity.LeadForm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _ := s.load(sid)
	if st.draft == nil {
		return nil, false
	}
	f := *st.draft
	return &f, true
}

func (s *Store) SaveDraft(sid string, form entity.LeadForm) {
	if sid == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _ := s.load(sid)
	st.draft = &form
	s.lru.Add(sid, st)
}

func (s *Store) ClearDraft(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.load(sid)
	if !ok {
		return
	}
	st.draft = nil
	s.lru.Add(sid, st)
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	return s.lru.Len()
}
