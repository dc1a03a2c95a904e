package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AppEnv:   "test",
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
	return db
}

func createTestUsers(t *testing.T, db *gorm.DB, ids ...uint) {
	t.Helper()

	repo := NewUserRepository(db)
	for _, id := range ids {
		user := &models.User{
			ID:           id,
			UserName:     fmt.Sprintf("user%d", id),
			Email:        fmt.Sprintf("user%d@example.com", id),
			PasswordHash: "x",
			PlayerTag:    fmt.Sprintf("user%d#%08x", id, id),
		}
		if err := repo.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("CreateUser(%d) error = %v", id, err)
		}
	}
}

func TestFindPendingByUnorderedPair_Symmetric(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUsers(t, db, 1, 2, 3)
	repo := NewFriendRequestRepository(db)

	request := &models.FriendRequest{RequesterID: 2, ReceiverID: 1}
	if err := repo.Create(ctx, request); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ab, err := repo.FindPendingByUnorderedPair(ctx, 1, 2)
	if err != nil {
		t.Fatalf("FindPendingByUnorderedPair(1, 2) error = %v", err)
	}
	ba, err := repo.FindPendingByUnorderedPair(ctx, 2, 1)
	if err != nil {
		t.Fatalf("FindPendingByUnorderedPair(2, 1) error = %v", err)
	}
	if ab.ID != ba.ID || ab.ID != request.ID {
		t.Errorf("lookups returned %d and %d, want %d", ab.ID, ba.ID, request.ID)
	}

	for _, pair := range [][2]uint{{1, 3}, {3, 1}} {
		_, err := repo.FindPendingByUnorderedPair(ctx, pair[0], pair[1])
		if !errors.HasCode(err, errors.ErrCodeNotFound) {
			t.Errorf("FindPendingByUnorderedPair(%d, %d) error = %v, want %s", pair[0], pair[1], err, errors.ErrCodeNotFound)
		}
	}
}

func TestFriendRequestCreate_UniquePendingPair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUsers(t, db, 1, 2)
	repo := NewFriendRequestRepository(db)

	if err := repo.Create(ctx, &models.FriendRequest{RequesterID: 1, ReceiverID: 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, &models.FriendRequest{RequesterID: 2, ReceiverID: 1})
	if !errors.HasCode(err, errors.ErrCodeStoreConflict) {
		t.Errorf("second Create() error = %v, want %s", err, errors.ErrCodeStoreConflict)
	}
}

func TestFriendRequestCreate_SelfRequestRejected(t *testing.T) {
	db := newTestDB(t)
	createTestUsers(t, db, 1)
	repo := NewFriendRequestRepository(db)

	err := repo.Create(context.Background(), &models.FriendRequest{RequesterID: 1, ReceiverID: 1})
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("Create() self error = %v, want %s", err, errors.ErrCodeValidation)
	}
}

func TestFriendRequestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUsers(t, db, 1, 2)
	repo := NewFriendRequestRepository(db)

	request := &models.FriendRequest{RequesterID: 1, ReceiverID: 2}
	if err := repo.Create(ctx, request); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	respondedAt := time.Now().UTC().Add(time.Minute)
	if err := repo.UpdateStatus(ctx, request.ID, models.FriendRequestStatusPending, models.FriendRequestStatusDeclined, respondedAt); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	stored, err := repo.FindByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Status != models.FriendRequestStatusDeclined {
		t.Errorf("Status = %v, want declined", stored.Status)
	}
	if stored.PendingPairKey != nil {
		t.Errorf("PendingPairKey = %v, want nil", *stored.PendingPairKey)
	}
	if stored.Requester.UserName != "user1" || stored.Receiver.UserName != "user2" {
		t.Errorf("FindByID() did not load users: %+v", stored)
	}

	tests := []struct {
		name     string
		id       uint
		from     models.FriendRequestStatus
		to       models.FriendRequestStatus
		wantCode string
	}{
		{"Stale from status", request.ID, models.FriendRequestStatusPending, models.FriendRequestStatusAccepted, errors.ErrCodeStoreConflict},
		{"Missing request", 9999, models.FriendRequestStatusPending, models.FriendRequestStatusAccepted, errors.ErrCodeNotFound},
		{"Back to pending", request.ID, models.FriendRequestStatusDeclined, models.FriendRequestStatusPending, errors.ErrCodeInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateStatus(ctx, tt.id, tt.from, tt.to, time.Now().UTC())
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("UpdateStatus() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestFriendRequestLists_OnlyPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUsers(t, db, 1, 2, 3)
	repo := NewFriendRequestRepository(db)

	toTwo := &models.FriendRequest{RequesterID: 1, ReceiverID: 2}
	toThree := &models.FriendRequest{RequesterID: 1, ReceiverID: 3}
	for _, r := range []*models.FriendRequest{toTwo, toThree} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.UpdateStatus(ctx, toTwo.ID, models.FriendRequestStatusPending, models.FriendRequestStatusAccepted, time.Now().UTC()); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	sent, err := repo.FindAllPendingByRequester(ctx, 1)
	if err != nil {
		t.Fatalf("FindAllPendingByRequester() error = %v", err)
	}
	if len(sent) != 1 || sent[0].ID != toThree.ID {
		t.Errorf("FindAllPendingByRequester(1) = %+v, want only request %d", sent, toThree.ID)
	}

	received, err := repo.FindAllPendingByReceiver(ctx, 3)
	if err != nil {
		t.Fatalf("FindAllPendingByReceiver() error = %v", err)
	}
	if len(received) != 1 || received[0].Requester.UserName != "user1" {
		t.Errorf("FindAllPendingByReceiver(3) = %+v, want the request from user1", received)
	}
}

func TestFriendRequestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUsers(t, db, 1, 2)
	repo := NewFriendRequestRepository(db)

	request := &models.FriendRequest{RequesterID: 1, ReceiverID: 2}
	if err := repo.Create(ctx, request); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := repo.Delete(ctx, request.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != request.ID {
		t.Errorf("Delete() = %d, want %d", deleted.ID, request.ID)
	}

	if _, err := repo.Delete(ctx, request.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}
