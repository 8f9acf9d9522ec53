// Package adminstore holds the admin console's client state: the admin session and
// the paginated user, suggestion and date collections fetched from the admin API.
//
// A Store is an explicit instance. Actions call the API, then commit the response
// atomically. Read actions record failures in state and return nothing; write actions
// (Login, CreateDate, UpdateDateStatus) record the failure and return it too.
package adminstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"

	"github.com/genielabs/genie-admin/internal"
	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

var log = internal.GetLogger()

var (
	ErrDisposed           = errors.New("admin store has been disposed")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrNotAuthenticated   = errors.New("not logged in")
)

const DefaultSuggestionLimit = 10

// resource keys for response sequencing
const (
	keyUsers        = "users"
	keySelectedUser = "selectedUser"
	keySuggestions  = "suggestions"
	keyGenieDates   = "genieDates"
)

var resourceKeys = []string{keyUsers, keySelectedUser, keySuggestions, keyGenieDates}

type Store struct {
	api      API
	storage  tokenstore.Storage
	validate *validator.Validate

	pageSize        int
	suggestionLimit int

	root   context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	state     Snapshot
	seq       map[string]uint64
	inflight  map[models.Operation]int
	disposed  bool
	listeners map[int]func(Snapshot)
	nextID    int
}

type Option func(*Store)

// WithPageSize sets the page size used until a fetch commits a different one.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSuggestionLimit caps the number of suggestions requested per user.
func WithSuggestionLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.suggestionLimit = n
		}
	}
}

// New returns a store in its initial, logged-out state.
func New(api API, storage tokenstore.Storage, opts ...Option) *Store {
	s := &Store{
		api:             api,
		storage:         storage,
		validate:        validator.New(),
		pageSize:        models.DefaultPageSize,
		suggestionLimit: DefaultSuggestionLimit,
		seq:             make(map[string]uint64, len(resourceKeys)),
		inflight:        make(map[models.Operation]int),
		listeners:       make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root, s.cancel = context.WithCancel(context.Background())
	s.state = initialState(s.pageSize)
	return s
}

// FromPersistedSnapshot returns a store whose session is restored from storage. A
// persisted session that is unreadable or violates the all-or-nothing rule is
// discarded and removed, leaving the store logged out.
func FromPersistedSnapshot(
	ctx context.Context,
	api API,
	storage tokenstore.Storage,
	opts ...Option,
) (*Store, error) {
	s := New(api, storage, opts...)

	raw, ok, err := storage.Get(ctx, tokenstore.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted session: %w", err)
	}
	if !ok {
		return s, nil
	}

	var ps persistedSession
	if err := json.Unmarshal([]byte(raw), &ps); err != nil || !ps.consistent() {
		log.Warn("discarding inconsistent persisted admin session")
		if err := storage.Delete(ctx, tokenstore.SessionKey); err != nil {
			return nil, fmt.Errorf("failed to remove persisted session: %w", err)
		}
		return s, nil
	}

	s.state.Admin = ps.Admin
	s.state.IsAuthenticated = ps.IsAuthenticated
	s.state.AccessToken = ps.AccessToken
	return s, nil
}

// Dispose cancels every in-flight request and drops all listeners. Responses that
// arrive afterwards are discarded and later actions fail with ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.listeners = make(map[int]func(Snapshot))
	s.mu.Unlock()
	s.cancel()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	var out Snapshot
	if err := copier.CopyWithOption(&out, &s.state, copier.Option{DeepCopy: true}); err != nil {
		log.Errorf("failed to copy admin store snapshot: %v", err)
		return s.state
	}
	return out
}

// Subscribe registers fn to receive a snapshot after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the lock and notifies listeners outside it.
func (s *Store) update(fn func(st *Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	snap, listeners := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify(snap, listeners)
}

func (s *Store) prepareNotifyLocked() (Snapshot, []func(Snapshot)) {
	if len(s.listeners) == 0 {
		return Snapshot{}, nil
	}
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return s.snapshotLocked(), listeners
}

func notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}

// ClearError resets the most recent failure message.
func (s *Store) ClearError() {
	s.update(func(st *Snapshot) {
		st.Error = ""
	})
}

// call tracks one action from dispatch to commit.
type call struct {
	op  models.Operation
	key string
	seq uint64
}

// target names one action about to be dispatched.
type target struct {
	op  models.Operation
	key string
}

// begin marks op pending, clears the previous error and, for keyed resources, takes
// the next sequence number. The returned context is cancelled by Dispose.
func (s *Store) begin(ctx context.Context, op models.Operation, key string) (*call, context.Context, context.CancelFunc, error) {
	calls, ctx, cancel, err := s.beginGroup(ctx, target{op: op, key: key})
	if err != nil {
		return nil, nil, nil, err
	}
	return calls[0], ctx, cancel, nil
}

// beginGroup dispatches sibling actions in one commit. The previous error is cleared
// once, so a sibling that fails first keeps its message visible.
func (s *Store) beginGroup(ctx context.Context, targets ...target) ([]*call, context.Context, context.CancelFunc, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, nil, nil, ErrDisposed
	}
	calls := make([]*call, len(targets))
	for i, t := range targets {
		c := &call{op: t.op, key: t.key}
		if t.key != "" {
			s.seq[t.key]++
			c.seq = s.seq[t.key]
		}
		s.inflight[t.op]++
		s.state.Requests[t.op] = models.Pending(t.op)
		calls[i] = c
	}
	s.state.Error = ""
	snap, listeners := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify(snap, listeners)

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.root, cancel)
	return calls, ctx, func() {
		stop()
		cancel()
	}, nil
}

// finish settles c. When err is nil commit runs under the lock, unless the response
// is stale or the store was disposed, in which case state is left untouched. It
// reports whether the outcome was applied.
func (s *Store) finish(c *call, err error, commit func(st *Snapshot)) bool {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return false
	}

	s.inflight[c.op]--
	settled := s.inflight[c.op] <= 0
	if settled {
		delete(s.inflight, c.op)
	}

	stale := c.key != "" && c.seq < s.seq[c.key]
	switch {
	case stale:
		log.Debugf("discarding stale %s response (seq %d < %d)", c.op, c.seq, s.seq[c.key])
		if settled && s.state.Request(c.op).IsPending() {
			delete(s.state.Requests, c.op)
		}
	case err != nil:
		msg := failureMessage(c.op, err)
		s.state.Requests[c.op] = models.Failed(c.op, msg)
		s.state.Error = msg
		log.WithField("operation", c.op).Debug(msg)
	default:
		if commit != nil {
			commit(&s.state)
		}
		if settled {
			delete(s.state.Requests, c.op)
		}
	}

	snap, listeners := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify(snap, listeners)
	return !stale
}

func failureMessage(op models.Operation, err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s failed", op)
}

// fail records err for op without a network round trip and returns it.
func (s *Store) fail(ctx context.Context, op models.Operation, err error) error {
	c, _, cancel, beginErr := s.begin(ctx, op, "")
	if beginErr != nil {
		return beginErr
	}
	cancel()
	s.finish(c, err, nil)
	return err
}

// bumpAllLocked invalidates every in-flight keyed response.
func (s *Store) bumpAllLocked() {
	for _, key := range resourceKeys {
		s.seq[key]++
	}
}
