package handlers

import (
	"sync"
	"time"

	"finedesk/internal/models"
	"finedesk/internal/services/screens"
)

type screenSet struct {
	myFines  *screens.MyFines
	payments *screens.Payments
	appeal   *screens.DriverAppeal
	appeals  *screens.Appeals
	charged  *screens.ChargedFines
	seen     time.Time
}

// Registry keeps the mounted screens of each session. Mounting a screen
// replaces the previous instance and with it any selection and notice.
type Registry struct {
	deps screens.Deps

	mu   sync.Mutex
	sets map[string]*screenSet
}

func NewRegistry(deps screens.Deps) *Registry {
	return &Registry{deps: deps, sets: map[string]*screenSet{}}
}

func (r *Registry) set(sess models.Session) *screenSet {
	s, ok := r.sets[sess.Key()]
	if !ok {
		s = &screenSet{}
		r.sets[sess.Key()] = s
	}
	s.seen = time.Now()
	return s
}

func (r *Registry) MyFines(sess models.Session, mount bool) *screens.MyFines {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.set(sess)
	if mount || s.myFines == nil {
		s.myFines = screens.NewMyFines(r.deps)
	}
	return s.myFines
}

func (r *Registry) Payments(sess models.Session, mount bool) *screens.Payments {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.set(sess)
	if mount || s.payments == nil {
		s.payments = screens.NewPayments(r.deps)
	}
	return s.payments
}

func (r *Registry) DriverAppeal(sess models.Session, mount bool) *screens.DriverAppeal {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.set(sess)
	if mount || s.appeal == nil {
		s.appeal = screens.NewDriverAppeal(r.deps)
	}
	return s.appeal
}

func (r *Registry) Appeals(sess models.Session, mount bool) *screens.Appeals {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.set(sess)
	if mount || s.appeals == nil {
		if s.appeals != nil {
			s.appeals.Close()
		}
		s.appeals = screens.NewAppeals(r.deps)
	}
	return s.appeals
}

func (r *Registry) ChargedFines(sess models.Session) *screens.ChargedFines {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.set(sess)
	if s.charged == nil {
		s.charged = screens.NewChargedFines(r.deps)
	}
	return s.charged
}

// Sweep unmounts the screens of sessions idle for longer than idle and
// returns how many sessions it dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	n := 0
	for k, s := range r.sets {
		if s.seen.Before(cutoff) {
			if s.appeals != nil {
				s.appeals.Close()
			}
			delete(r.sets, k)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}
