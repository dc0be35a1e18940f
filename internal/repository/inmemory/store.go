package inmemory

import (
	"context"
	"sync"
	"time"

	"taskgarden/internal/models/task"
	"taskgarden/internal/models/user"
	"taskgarden/internal/repository"

	"github.com/google/uuid"
)

// Store keeps everything in maps behind one RWMutex. It backs the unit
// tests and local runs without a database; the postgres store is the
// production implementation of the same interface.
type Store struct {
	mtx sync.RWMutex

	users      map[int64]*user.User
	byUsername map[string]int64
	byEmail    map[string]int64
	nextUserID int64

	sessions map[uuid.UUID]*user.Session

	tasks      map[int64]*task.Task
	taskIDs    []int64 // insertion order, creation time ascending
	nextTaskID int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*user.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
		sessions:   make(map[uuid.UUID]*user.Session),
		tasks:      make(map[int64]*task.Task),
	}
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byUsername[u.Username]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}

	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = time.Now()

	stored := *u
	s.users[u.ID] = &stored
	s.byUsername[u.Username] = u.ID
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

// --- sessions ---

func (s *Store) CreateSession(ctx context.Context, sess *user.Session) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored := *sess
	s.sessions[sess.Token] = &stored
	return nil
}

func (s *Store) GetSession(ctx context.Context, token uuid.UUID) (*user.Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *Store) DeleteSession(ctx context.Context, token uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return repository.ErrNotFound
	}
	delete(s.sessions, token)
	return nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var removed int64
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// --- tasks ---

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextTaskID++
	t.ID = s.nextTaskID
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := *t
	s.tasks[t.ID] = &stored
	s.taskIDs = append(s.taskIDs, t.ID)
	return nil
}

func (s *Store) GetTask(ctx context.Context, userID, taskID int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *Store) ListTasks(ctx context.Context, userID int64, filter repository.TaskFilter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	// reverse insertion order == created_at descending
	res := []*task.Task{}
	for i := len(s.taskIDs) - 1; i >= 0; i-- {
		t := s.tasks[s.taskIDs[i]]
		if t.UserID != userID {
			continue
		}
		if !matches(filter.Category, string(t.Category)) {
			continue
		}
		if !matches(filter.Status, string(t.Status)) {
			continue
		}
		copied := *t
		res = append(res, &copied)
	}
	return res, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return repository.ErrNotFound
	}

	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now()

	stored := *t
	s.tasks[t.ID] = &stored
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}

	delete(s.tasks, taskID)
	for i, id := range s.taskIDs {
		if id == taskID {
			s.taskIDs = append(s.taskIDs[:i], s.taskIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) RecentTasks(ctx context.Context, userID int64, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for i := len(s.taskIDs) - 1; i >= 0 && len(res) < limit; i-- {
		t := s.tasks[s.taskIDs[i]]
		if t.UserID != userID {
			continue
		}
		copied := *t
		res = append(res, &copied)
	}
	return res, nil
}

func (s *Store) Statistics(ctx context.Context, userID int64, today time.Time) (repository.TaskStats, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var stats repository.TaskStats
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		stats.Total++
		if t.Status != task.StatusCompleted {
			continue
		}
		stats.Completed++
		if t.CompletedAt != nil && sameDay(*t.CompletedAt, today) {
			stats.TodayCompleted++
		}
	}
	return stats, nil
}

func (s *Store) CompletionsByDay(ctx context.Context, userID int64, from, to time.Time) (map[string]int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	from = truncateToDay(from)
	to = truncateToDay(to)

	res := make(map[string]int)
	for _, t := range s.tasks {
		if t.UserID != userID || t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		day := truncateToDay(*t.CompletedAt)
		if day.Before(from) || day.After(to) {
			continue
		}
		res[day.Format(task.DateLayout)]++
	}
	return res, nil
}

func matches(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
