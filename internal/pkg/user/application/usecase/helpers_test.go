package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	qport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/port"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]user.User
	err   error
}

func newMemRepo(users ...user.User) *memRepo {
	r := &memRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrUserExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memRepo) ListExcept(_ context.Context, excludeID string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []user.User
	for _, u := range r.users {
		if u.ID != excludeID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeAvatar struct {
	url string
	err error
}

func (f fakeAvatar) Lookup(context.Context, string) (string, error) { return f.url, f.err }

type fakeQueue struct {
	tasks []qport.Task
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, t)
	return "id", nil
}

func (q *fakeQueue) Close() error { return nil }

var errDB = errors.New("connection refused")
