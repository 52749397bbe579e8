package todo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Store owns the ordered task list and writes every change through to
// the task file.
type Store struct {
	mu    sync.Mutex
	path  string
	tasks []Task
	ids   IDGenerator
	now   func() time.Time
	log   *log.Logger

	// unread is the error of the last Load when the file exists but could
	// not be read or moved aside. Saving is refused until a Load succeeds.
	unread error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the task id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.ids = gen
	}
}

// WithLogger sets the logger for load fallbacks and id repairs.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

// NewStore returns an empty store backed by the task file at path.
// Call Load to read existing tasks.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		tasks: []Task{},
		ids:   UUIDGenerator{},
		now:   time.Now,
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Load replaces the in-memory tasks with the contents of the task file.
//
// On failure the store is reset to an empty list and a *PersistError with
// Op OpRead is returned. A missing file also matches fs.ErrNotExist. A
// malformed file is renamed aside first so the next save cannot destroy
// it; the new location is in PersistError.Quarantined. Any other read
// failure leaves the file in place and makes every save fail with
// ErrWriteFailed until a later Load succeeds.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := ReadFile(s.path)
	if err != nil {
		s.tasks = []Task{}
		s.unread = nil
		perr := &PersistError{Op: OpRead, Path: s.path, Err: err}
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.log.Debug("task file not found, starting with an empty list", "path", s.path)
		case errors.Is(err, ErrMalformed):
			perr.Quarantined = s.quarantine()
			if perr.Quarantined == "" {
				s.unread = err
			}
			s.log.Warn("task file is malformed, starting with an empty list",
				"path", s.path, "moved_to", perr.Quarantined, "err", err)
		default:
			s.unread = err
			s.log.Warn("task file unreadable, starting with an empty list", "path", s.path, "err", err)
		}
		return perr
	}

	s.unread = nil
	s.tasks = s.repairIDs(tasks)
	s.log.Debug("loaded tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Save writes all tasks to the task file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Create appends a new task. text is trimmed and must not be empty.
// If the write fails the task is kept in memory and returned together
// with the *PersistError.
func (s *Store) Create(text string, due *Date) (Task, error) {
	text, err := normalizeText(text)
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newUniqueID(s.ids, s.hasID)
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: s.now().Truncate(time.Microsecond),
	}
	if due != nil {
		d := *due
		task.DueDate = &d
	}
	s.tasks = append(s.tasks, task)

	return task.Clone(), s.save()
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[i].Clone(), nil
}

// Update changes the text and/or due date of a task.
func (s *Store) Update(id string, u TaskUpdate) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	var text string
	if u.Text != nil {
		t, err := normalizeText(*u.Text)
		if err != nil {
			return Task{}, err
		}
		text = t
	}

	task := &s.tasks[i]
	if u.Text != nil {
		task.Text = text
	}
	switch {
	case u.ClearDue:
		task.DueDate = nil
	case u.Due != nil:
		d := *u.Due
		task.DueDate = &d
	}

	return task.Clone(), s.save()
}

// SetDueDate sets the due date of a task, or clears it when due is nil.
func (s *Store) SetDueDate(id string, due *Date) (Task, error) {
	if due == nil {
		return s.Update(id, TaskUpdate{ClearDue: true})
	}
	return s.Update(id, TaskUpdate{Due: due})
}

// SetCompleted sets the completed flag of a task. Setting the current
// value still writes the file.
func (s *Store) SetCompleted(id string, completed bool) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	s.tasks[i].Completed = completed

	return s.tasks[i].Clone(), s.save()
}

// Delete removes a task.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	return s.save()
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (s *Store) ClearCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept

	return removed, s.save()
}

// Query returns copies of the tasks that pass filter, in insertion order.
// If dueOn is non-nil only tasks due on that date are returned.
func (s *Store) Query(filter Filter, dueOn *Date) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !filter.Match(t) {
			continue
		}
		if dueOn != nil && !t.DueOn(*dueOn) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// ResolveID returns the id of the single task whose id equals ref or
// starts with it.
func (s *Store) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &NotFoundError{ID: ref}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(ref) >= 0 {
		return ref, nil
	}
	var matches []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousIDError{Prefix: ref, Matches: matches}
	}
}

func (s *Store) save() error {
	if s.unread != nil {
		return &PersistError{
			Op:   OpWrite,
			Path: s.path,
			Err:  fmt.Errorf("task file was not read, refusing to overwrite it: %w", s.unread),
		}
	}
	if err := WriteFile(s.path, s.tasks); err != nil {
		return &PersistError{Op: OpWrite, Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) hasID(id string) bool {
	return s.indexOf(id) >= 0
}

// repairIDs gives every repeated id after the first a fresh one.
func (s *Store) repairIDs(tasks []Task) []Task {
	all := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		all[t.ID] = true
	}
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		if !seen[tasks[i].ID] {
			seen[tasks[i].ID] = true
			continue
		}
		id, err := newUniqueID(s.ids, func(id string) bool { return all[id] })
		if err != nil {
			s.log.Warn("could not repair duplicate task id", "id", tasks[i].ID, "err", err)
			continue
		}
		s.log.Warn("duplicate task id, assigned a new one", "id", tasks[i].ID, "new_id", id)
		tasks[i].ID = id
		all[id] = true
		seen[id] = true
	}
	return tasks
}

// quarantine moves the task file aside and returns the new path, or ""
// if the move failed.
func (s *Store) quarantine() string {
	dest := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102-150405"))
	if err := os.Rename(s.path, dest); err != nil {
		s.log.Warn("could not move malformed task file aside", "path", s.path, "err", err)
		return ""
	}
	return dest
}
