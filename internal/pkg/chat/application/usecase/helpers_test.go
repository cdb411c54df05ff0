package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	cacheport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/cache/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

var errBoom = errors.New("boom")

type fakeDirectory struct {
	users map[string]user.User
	err   error
}

func newDirectory(users ...user.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]user.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *fakeDirectory) FindByID(_ context.Context, id string) (*user.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (d *fakeDirectory) ListExcept(_ context.Context, excludeID string) ([]user.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []user.User
	for id, u := range d.users {
		if id != excludeID {
			out = append(out, u)
		}
	}
	return out, nil
}

type upsert struct {
	id           string
	participants []string
}

type fakeProvider struct {
	mu            sync.Mutex
	conversations map[string][]talkjs.Conversation // what each user's list endpoint returns
	stored        map[string]talkjs.Conversation   // reachable by id only
	upserts       []upsert
	listCalls     int
	getCalls      int
	listErr       error
	getErr        error
	upsertErr     error
}

func (p *fakeProvider) GetConversation(_ context.Context, id string) (*talkjs.Conversation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getCalls++
	if p.getErr != nil {
		return nil, p.getErr
	}
	if c, ok := p.stored[id]; ok {
		return &c, nil
	}
	for _, u := range p.upserts {
		if u.id == id {
			return &talkjs.Conversation{ID: id, Participants: participants(u.participants...)}, nil
		}
	}
	for _, list := range p.conversations {
		for _, c := range list {
			if c.ID == id {
				return &c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", talkjs.ErrConversationNotFound, id)
}

func (p *fakeProvider) AppID() string                  { return "tApp" }
func (p *fakeProvider) Signature(userID string) string { return "sig-" + userID }

func (p *fakeProvider) UpsertConversation(_ context.Context, id string, participants []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.upsertErr != nil {
		return p.upsertErr
	}
	p.upserts = append(p.upserts, upsert{id: id, participants: participants})
	return nil
}

func (p *fakeProvider) ListUserConversations(_ context.Context, userID string) ([]talkjs.Conversation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.conversations[userID], nil
}

type memCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCache() *memCache { return &memCache{values: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			n++
		}
	}
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

func participants(ids ...string) map[string]json.RawMessage {
	m := make(map[string]json.RawMessage, len(ids))
	for _, id := range ids {
		m[id] = json.RawMessage(`{"access":"ReadWrite","notify":true}`)
	}
	return m
}

var (
	alice = user.User{ID: "alice123", Name: "Alice", Email: "alice@example.com", Avatar: "alice.jpg"}
	bob   = user.User{ID: "bob", Name: "Bob", Email: "bob@example.com", Avatar: "bob.jpg"}
	carol = user.User{ID: "carol", Name: "Carol", Email: "carol@example.com", Avatar: "carol.jpg"}
)
