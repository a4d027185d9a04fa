package fetcher

import (
	"context"
	"sync"

	"finedesk/internal/models"
)

// Collection holds the loading, error and row state of one list on one
// screen. Loads are not cancelled: when two overlap, the last to finish wins.
type Collection struct {
	svc *Service
	res Resource

	mu      sync.Mutex
	loading bool
	state   State
}

func NewCollection(svc *Service, res Resource) *Collection {
	return &Collection{
		svc:   svc,
		res:   res,
		state: State{Status: StatusIdle, Rows: []models.ViewRow{}},
	}
}

func (c *Collection) Load(ctx context.Context, sess models.Session) State {
	return c.LoadFrom(ctx, sess, c.res)
}

// LoadFrom loads res into the collection, e.g. a query with a new body.
func (c *Collection) LoadFrom(ctx context.Context, sess models.Session, res Resource) State {
	c.mu.Lock()
	c.loading = true
	c.state.Message = ""
	c.state.Err = nil
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	st := c.svc.Fetch(ctx, sess, res)

	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
	return st
}

// State returns a copy of the current state.
func (c *Collection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	st.Rows = append([]models.ViewRow(nil), c.state.Rows...)
	if st.Rows == nil {
		st.Rows = []models.ViewRow{}
	}
	if c.loading {
		st.Status = StatusLoading
	}
	return st
}

func (c *Collection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Collection) Rows() []models.ViewRow { return c.State().Rows }
