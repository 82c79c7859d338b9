package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linkmark/linkmark-api/internal/bookmarks/repository"
	"github.com/linkmark/linkmark-api/internal/models"
	"github.com/linkmark/linkmark-api/pkg/middleware"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	calls int
	err   error
}

func (f *fakeRegistrar) Ensure(ctx context.Context, ident *middleware.Identity) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: ident.ID, Email: ident.Email}, nil
}

func newService() (*Service, *repository.MemoryRepo, *fakeRegistrar) {
	repo := repository.NewMemoryRepo()
	reg := &fakeRegistrar{}
	return NewService(repo, reg), repo, reg
}

var alice = &middleware.Identity{ID: "user-a", Email: "a@example.com"}
var bob = &middleware.Identity{ID: "user-b", Email: "b@example.com"}

func TestCreate_Valid(t *testing.T) {
	svc, _, reg := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, alice, "https://example.com", "Example")
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.Equal(t, "user-a", b.UserID)
	require.Equal(t, "https://example.com", b.URL)
	require.Equal(t, "Example", b.Title)
	require.False(t, b.CreatedAt.IsZero())
	require.Equal(t, 1, reg.calls, "registrar runs on every create")
}

func TestCreate_RejectsBadInput(t *testing.T) {
	svc, repo, reg := newService()
	ctx := context.Background()

	cases := []struct {
		name, url, title string
	}{
		{"empty title", "https://example.com", ""},
		{"blank title", "https://example.com", "   "},
		{"not a url", "not a url", "Example"},
		{"relative url", "/just/a/path", "Example"},
		{"scheme only", "https://", "Example"},
		{"empty url", "", "Example"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, alice, tc.url, tc.title)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	require.Equal(t, 0, reg.calls, "validation failures must not touch the registrar")
	list, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, list, "no rows inserted on validation failure")
}

func TestCreate_RegistrarFailure(t *testing.T) {
	svc, repo, reg := newService()
	reg.err = errors.New("db down")
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "https://example.com", "Example")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrValidation)

	list, _ := repo.ListByOwner(ctx, alice.ID)
	require.Empty(t, list)
}

func TestList_OrderAndScoping(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, alice, "https://one.example.com", "One")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create(ctx, alice, "https://two.example.com", "Two")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "https://theirs.example.com", "Theirs")
	require.NoError(t, err)

	require.True(t, second.CreatedAt.After(first.CreatedAt))

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "newest first")
	require.Equal(t, first.ID, list[1].ID)
	for _, b := range list {
		require.Equal(t, alice.ID, b.UserID)
	}
}

func TestList_EmptyForFreshUser(t *testing.T) {
	svc, _, _ := newService()
	list, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestDelete_Own(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, alice, "https://example.com", "Example")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, b.ID))

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDelete_ForeignLooksAbsent(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, alice, "https://example.com", "Example")
	require.NoError(t, err)

	err = svc.Delete(ctx, bob, b.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// store unchanged
	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.UserID)
}

func TestDelete_MissingOrEmptyID(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, alice, "no-such-id"), ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, alice, ""), ErrNotFound)
}

func TestDelete_Twice(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, alice, "https://example.com", "Example")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, b.ID))
	require.ErrorIs(t, svc.Delete(ctx, alice, b.ID), ErrNotFound)
}
