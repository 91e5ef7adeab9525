package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotLens/internal/domain/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testUser(id, email string) *models.User {
	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$fakehash",
		Phone:        "+15550001111",
		CreatedAt:    time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := testUser("u1", "alice@example.com")
	require.NoError(t, store.CreateUser(ctx, u))

	byEmail, err := store.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)
	assert.False(t, byEmail.PhoneVerified)
	assert.True(t, u.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserNotFoundIsNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u, err := store.UserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = store.UserByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDuplicateEmailRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("u1", "alice@example.com")))
	assert.Error(t, store.CreateUser(ctx, testUser("u2", "alice@example.com")))
}

func TestMarkPhoneVerified(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("u1", "alice@example.com")))
	require.NoError(t, store.MarkPhoneVerified(ctx, "u1"))

	u, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.PhoneVerified)

	assert.Error(t, store.MarkPhoneVerified(ctx, "missing"))
}

func TestVerificationCodeLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("u1", "alice@example.com")))

	expires := time.Date(2024, 6, 18, 12, 10, 0, 0, time.UTC)
	require.NoError(t, store.SaveCode(ctx, &models.VerificationCode{
		UserID: "u1", Code: "123456", ExpiresAt: expires,
	}))

	c, err := store.CodeByUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "123456", c.Code)
	assert.True(t, expires.Equal(c.ExpiresAt))

	// A resend replaces the previous code.
	require.NoError(t, store.SaveCode(ctx, &models.VerificationCode{
		UserID: "u1", Code: "654321", ExpiresAt: expires.Add(time.Minute),
	}))
	c, err = store.CodeByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "654321", c.Code)

	require.NoError(t, store.DeleteCode(ctx, "u1"))
	c, err = store.CodeByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestViewSaveAndUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("u1", "alice@example.com")))

	v, err := store.View(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, v)

	view := &models.ViewState{Symbol: "GC", ReportType: "legacy", Category: "commercial", LookbackWeeks: 156}
	require.NoError(t, store.SaveView(ctx, "u1", view))

	got, err := store.View(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *view, *got)

	view.Symbol = "CL"
	view.LookbackWeeks = 52
	require.NoError(t, store.SaveView(ctx, "u1", view))

	got, err = store.View(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "CL", got.Symbol)
	assert.Equal(t, 52, got.LookbackWeeks)
}
