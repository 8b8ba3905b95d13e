package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:          "Alice",
		Email:         "alice@example.com",
		Password:      "hashed",
		SkillsOffered: models.SkillList{"Guitar", "Songwriting"},
		SkillsWanted:  models.SkillList{"Spanish"},
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, models.SkillList{"Guitar", "Songwriting"}, got.SkillsOffered)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	repo := NewUserRepository(db)
	ctx := context.Background()

	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMye5x1U8qMQYBzLqG8Fzp7kE2YB3kKXhGi"
	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: hash}
	require.NoError(t, repo.Create(ctx, user))

	// First read fills the cache, second read is served from it
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, first.Password)

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, cached.Password)

	// Saving a profile edit off the cached read must not touch the hash
	cached.Bio = "Guitarist and language nerd"
	require.NoError(t, repo.Update(ctx, cached))

	var row models.User
	require.NoError(t, db.First(&row, user.ID).Error)
	assert.Equal(t, hash, row.Password)
	assert.Equal(t, "Guitarist and language nerd", row.Bio)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Name: "Alice", Email: "alice@example.com", Password: "hashed",
	}))

	err := repo.Create(ctx, &models.User{
		Name: "Other Alice", Email: "alice@example.com", Password: "hashed",
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateEmail, appErr.Code)
}

func TestUserRepository_SetStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.SetStatus(ctx, user.ID, models.StatusBanned))
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBanned, got.Status)

	err = repo.SetStatus(ctx, 9999, models.StatusBanned)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUsers := []*models.User{
		{Name: "Alice", Email: "alice@example.com", Password: "h", Status: models.StatusActive, Visibility: models.VisibilityPublic, Location: "Berlin", SkillsOffered: models.SkillList{"Guitar"}, Rating: 4.8, TotalSwaps: 12},
		{Name: "Bob", Email: "bob@example.com", Password: "h", Status: models.StatusActive, Visibility: models.VisibilityPublic, Location: "Hamburg", SkillsWanted: models.SkillList{"Guitar"}, Rating: 4.2},
		{Name: "Carol", Email: "carol@example.com", Password: "h", Status: models.StatusActive, Visibility: models.VisibilityPrivate, Location: "Berlin"},
		{Name: "Dave", Email: "dave@example.com", Password: "h", Status: models.StatusBanned, Visibility: models.VisibilityPublic, Location: "Berlin"},
	}
	for _, u := range seedUsers {
		require.NoError(t, repo.Create(ctx, u))
	}

	t.Run("only active public profiles", func(t *testing.T) {
		users, total, err := repo.List(ctx, UserFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, users, 2)
		// Best rated first
		assert.Equal(t, "Alice", users[0].Name)
	})

	t.Run("skill filter matches offered and wanted", func(t *testing.T) {
		users, total, err := repo.List(ctx, UserFilter{Skill: "guitar", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, users, 2)
	})

	t.Run("location filter", func(t *testing.T) {
		users, total, err := repo.List(ctx, UserFilter{Location: "berlin", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		users, total, err := repo.List(ctx, UserFilter{Page: 2, Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, users, 1)
		assert.Equal(t, "Bob", users[0].Name)
	})
}

func TestUserRepository_AdminList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Password: "h", Role: models.RoleAdmin, Status: models.StatusActive}))
	require.NoError(t, repo.Create(ctx, &models.User{Name: "Bob", Email: "bob@example.com", Password: "h", Role: models.RoleUser, Status: models.StatusBanned}))

	admins, total, err := repo.AdminList(ctx, AdminUserFilter{Role: models.RoleAdmin, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, admins, 1)
	assert.Equal(t, "Alice", admins[0].Name)

	banned, total, err := repo.AdminList(ctx, AdminUserFilter{Status: models.StatusBanned, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, banned, 1)
	assert.Equal(t, "Bob", banned[0].Name)

	bySearch, total, err := repo.AdminList(ctx, AdminUserFilter{Search: "bob@", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Bob", bySearch[0].Name)
}

func TestUserRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Alice", Email: "a@example.com", Password: "h", Status: models.StatusActive}))
	require.NoError(t, repo.Create(ctx, &models.User{Name: "Bob", Email: "b@example.com", Password: "h", Status: models.StatusBanned}))

	active, err := repo.CountByStatus(ctx, models.StatusActive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)

	recent, err := repo.CountSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, recent)
}
