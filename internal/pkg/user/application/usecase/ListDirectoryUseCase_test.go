package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

func directoryRepo() *memRepo {
	return newMemRepo(
		user.User{ID: "a1", Name: "Steve Works", Email: "steve.awesome@me.com", Avatar: "s.jpg"},
		user.User{ID: "b2", Name: "Mara Larson", Email: "mara02@yahoo.home", Avatar: "m.jpg"},
		user.User{ID: "c3", Name: "Alex Green", Email: "alex@hg.com", Avatar: "a.jpg"},
	)
}

func TestListDirectoryUseCase_ExcludesCaller(t *testing.T) {
	uc := NewListDirectoryUseCase(directoryRepo())

	profiles, err := uc.Execute(context.Background(), ListDirectoryInput{CurrentUserID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, []user.Profile{
		{ID: "c3", Name: "Alex Green", Avatar: "a.jpg"},
		{ID: "b2", Name: "Mara Larson", Avatar: "m.jpg"},
	}, profiles)
}

func TestListDirectoryUseCase_Query(t *testing.T) {
	uc := NewListDirectoryUseCase(directoryRepo())

	profiles, err := uc.Execute(context.Background(), ListDirectoryInput{CurrentUserID: "a1", Query: "  LAR "})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "b2", profiles[0].ID)

	profiles, err = uc.Execute(context.Background(), ListDirectoryInput{CurrentUserID: "a1", Query: "steve"})
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestListDirectoryUseCase_Errors(t *testing.T) {
	_, err := NewListDirectoryUseCase(directoryRepo()).Execute(context.Background(), ListDirectoryInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo := directoryRepo()
	repo.err = errDB
	_, err = NewListDirectoryUseCase(repo).Execute(context.Background(), ListDirectoryInput{CurrentUserID: "a1"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestGetUserUseCase(t *testing.T) {
	uc := NewGetUserUseCase(directoryRepo())

	u, err := uc.Execute(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "Mara Larson", u.Name)

	_, err = uc.Execute(context.Background(), "zz")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = uc.Execute(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
