// Package memory is an in-process implementation of the repositories. It
// enforces the same constraints as the postgres schema and is used for local
// runs and tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"caredesk/internal/domain"
)

type txKey struct{}

type Store struct {
	// txMu serializes transactions against each other and against writes
	// made outside a transaction.
	txMu sync.Mutex
	mu   sync.Mutex

	now func() time.Time
	seq int64

	users       map[int64]domain.User
	patients    map[int64]domain.Patient
	doctors     map[int64]domain.Doctor
	assignments map[int64]domain.Assignment
}

func NewStore() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		users:       make(map[int64]domain.User),
		patients:    make(map[int64]domain.Patient),
		doctors:     make(map[int64]domain.Doctor),
		assignments: make(map[int64]domain.Assignment),
	}
}

var (
	_ domain.Transactor = (*Store)(nil)
	_ domain.Pinger     = (*Store)(nil)
)

func (s *Store) Ping(context.Context) error { return nil }

// WithinTx restores every table to its state before fn when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}

	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// stamp returns a creation time strictly after every previous one so that
// "newest first" ordering is total.
func (s *Store) stamp() time.Time {
	return s.now().Add(time.Duration(s.seq) * time.Nanosecond)
}

type snapshot struct {
	seq         int64
	users       map[int64]domain.User
	patients    map[int64]domain.Patient
	doctors     map[int64]domain.Doctor
	assignments map[int64]domain.Assignment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		seq:         s.seq,
		users:       maps.Clone(s.users),
		patients:    maps.Clone(s.patients),
		doctors:     maps.Clone(s.doctors),
		assignments: maps.Clone(s.assignments),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq = snap.seq
	s.users = snap.users
	s.patients = snap.patients
	s.doctors = snap.doctors
	s.assignments = snap.assignments
}

// deletePatientLocked removes a patient and its assignments. Caller holds mu.
func (s *Store) deletePatientLocked(patientID int64) {
	delete(s.patients, patientID)
	for id, a := range s.assignments {
		if a.PatientID == patientID {
			delete(s.assignments, id)
		}
	}
}
