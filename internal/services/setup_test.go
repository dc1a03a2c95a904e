package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"gorm.io/gorm"
)

const testJWTSecret = "test_secret_key_minimum_32_chars"

type testEnv struct {
	db             *gorm.DB
	users          *repositories.UserRepository
	weapons        *repositories.WeaponRepository
	friendRequests *repositories.FriendRequestRepository
	friendships    *repositories.FriendshipRepository
	engine         *FriendRequestService
	friends        *FriendshipService
	userService    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DBDriver:         config.DriverSQLite,
		DBPath:           fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AppEnv:           "test",
		JWTSecret:        testJWTSecret,
		JWTTTLHours:      24,
		StartingMoney:    1000,
		DefaultWeaponIDs: []uint{1, 2},
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		db:             db,
		users:          repositories.NewUserRepository(db),
		weapons:        repositories.NewWeaponRepository(db),
		friendRequests: repositories.NewFriendRequestRepository(db),
		friendships:    repositories.NewFriendshipRepository(db),
	}
	env.engine = NewFriendRequestService(db, env.friendRequests, env.friendships, env.users)
	env.friends = NewFriendshipService(env.friendships, env.users)
	env.userService = NewUserService(db, env.users, cfg)
	return env
}

// createUser inserts a user with a fixed id
func (e *testEnv) createUser(t *testing.T, id uint, name string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           id,
		UserName:     name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "not-a-real-hash",
		PlayerTag:    fmt.Sprintf("%s#%08x", name, id),
		Money:        1000,
	}
	if err := e.users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", name, err)
	}
	return user
}

func (e *testEnv) countFriendships(t *testing.T, a, b uint) int64 {
	t.Helper()

	low, high := models.OrderedPair(a, b)
	var count int64
	if err := e.db.Model(&models.Friendship{}).Where("pair_low_id = ? AND pair_high_id = ?", low, high).Count(&count).Error; err != nil {
		t.Fatalf("count friendships error = %v", err)
	}
	return count
}
