package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	qport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"
)

// SyncUserTaskType pushes a local account to the chat provider.
const SyncUserTaskType = "talkjs:sync_user"

// SyncUserQueue is the asynq queue the sync task runs on.
const SyncUserQueue = "talkjs"

// SyncUserTaskPayload is the JSON payload transported via the queue.
type SyncUserTaskPayload struct {
	UserID string `json:"userId"`
}

// UserSyncer is the part of the chat provider client the task needs.
type UserSyncer interface {
	UpsertUser(ctx context.Context, id string, u talkjs.User) error
}

// EnqueueSyncUser schedules a sync for userID. Duplicate syncs within a
// minute are collapsed.
func EnqueueSyncUser(ctx context.Context, q qport.Client, userID string) (string, error) {
	b, err := json.Marshal(SyncUserTaskPayload{UserID: userID})
	if err != nil {
		return "", err
	}
	opts := qport.EnqueueOption{Queue: SyncUserQueue, MaxRetry: 10, UniqueTTL: time.Minute}
	return q.Enqueue(ctx, qport.Task{Type: SyncUserTaskType, Payload: b}, opts)
}

// RegisterSyncUserTask binds the sync handler to srv.
func RegisterSyncUserTask(srv qport.Server, repo repository.UserRepository, syncer UserSyncer) {
	srv.Register(SyncUserTaskType, NewSyncUserHandler(repo, syncer))
}

// NewSyncUserHandler loads the user and upserts it at the provider.
// A bad payload or an unknown user is not retried.
func NewSyncUserHandler(repo repository.UserRepository, syncer UserSyncer) qport.Handler {
	return func(ctx context.Context, t qport.Task) error {
		var p SyncUserTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil || p.UserID == "" {
			return fmt.Errorf("sync user: bad payload %q: %w", t.Payload, qport.ErrSkipRetry)
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		u, err := repo.FindByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return fmt.Errorf("sync user %s: %v: %w", p.UserID, err, qport.ErrSkipRetry)
			}
			return fmt.Errorf("sync user %s: %w", p.UserID, err)
		}
		return syncer.UpsertUser(ctx, u.ID, ProviderUser(*u))
	}
}

// ProviderUser maps an account to the provider's user resource.
func ProviderUser(u user.User) talkjs.User {
	return talkjs.User{
		Name:     u.Name,
		Email:    []string{u.Email},
		PhotoURL: u.Avatar,
		Role:     "default",
	}
}
