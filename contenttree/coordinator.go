package contenttree

import (
	"context"
	"errors"
	"log"
	"sync"
)

// State is the lifecycle phase of a content tree.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Mutating
	Reconciling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Mutating:
		return "mutating"
	case Reconciling:
		return "reconciling"
	}
	return "unknown"
}

// Settle folds the server's answer into the tree once a mutation is persisted.
// It runs against the tree as it is at that moment, which may already differ
// from the tree the mutation was applied to.
type Settle func(sections []Section) []Section

// Mutation is one optimistic change. Apply runs under the tree lock against a
// private copy and returns the new tree; returning errNoChange skips the
// network call. Persist runs after the lock is released.
type Mutation struct {
	Op      string
	Apply   func(sections []Section) ([]Section, error)
	Persist func(ctx context.Context) (Settle, error)
}

// Coordinator owns the local tree and runs mutations against it: the local
// change is visible immediately, the remote call follows, and a failed call
// replaces the tree with a fresh copy from the server.
type Coordinator struct {
	courseID string
	remote   Remote
	logger   *log.Logger

	mu          sync.RWMutex
	sections    []Section
	loaded      bool
	loading     int
	mutating    int
	reconciling int
}

func newCoordinator(courseID string, remote Remote, logger *log.Logger) *Coordinator {
	return &Coordinator{
		courseID: courseID,
		remote:   remote,
		logger:   logger,
		sections: []Section{},
	}
}

// State reports the current lifecycle phase.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.loading > 0:
		return Loading
	case !c.loaded:
		return Idle
	case c.reconciling > 0:
		return Reconciling
	case c.mutating > 0:
		return Mutating
	}
	return Ready
}

// Load replaces the tree with the server's copy. A failed load leaves the
// previous tree in place.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()

	fresh, err := c.remote.ListModules(ctx, c.courseID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if err != nil {
		c.logger.Printf("[CONTENT-TREE] Load failed for course %s: %v", c.courseID, err)
		return err
	}
	c.sections = normalize(fresh, c.sections)
	c.loaded = true
	return nil
}

// Run applies m locally, persists it, and reconciles on failure. The returned
// error is the persist error when the reload succeeded, or a *RefetchError
// when it did not.
func (c *Coordinator) Run(ctx context.Context, m Mutation) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	next, err := m.Apply(cloneSections(c.sections))
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	c.sections = next
	c.mutating++
	c.mu.Unlock()

	settle, err := m.Persist(ctx)

	c.mu.Lock()
	c.mutating--
	if err == nil {
		if settle != nil {
			c.sections = settle(cloneSections(c.sections))
		}
		c.mu.Unlock()
		return nil
	}
	c.reconciling++
	c.mu.Unlock()

	c.logger.Printf("[CONTENT-TREE] %s failed, reloading course %s: %v", m.Op, c.courseID, err)
	return c.reconcile(ctx, err)
}

// reconcile reloads the tree after a failed mutation. The reload ignores
// cancellation of ctx so a cancelled caller still leaves a server-true tree.
func (c *Coordinator) reconcile(ctx context.Context, cause error) error {
	fresh, err := c.remote.ListModules(context.WithoutCancel(ctx), c.courseID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconciling--
	if err != nil {
		c.logger.Printf("[CONTENT-TREE] Reload failed for course %s, keeping local tree: %v", c.courseID, err)
		return &RefetchError{Mutation: cause, Refetch: err}
	}
	c.sections = normalize(fresh, c.sections)
	return cause
}

// read runs fn against the tree under the read lock.
func (c *Coordinator) read(fn func(sections []Section)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.sections)
}

// local applies a change that never leaves the process, such as expanding a
// section.
func (c *Coordinator) local(fn func(sections []Section) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.sections)
}
