package services

import (
	"context"
	"time"

	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/internal/security"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest carries the fields to change; nil fields are left as they are.
type UpdateUserRequest struct {
	UserName *string `json:"userName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Money    *int64  `json:"money,omitempty"`
}

type UserService struct {
	db               *gorm.DB
	users            *repositories.UserRepository
	jwtSecret        string
	jwtTTL           time.Duration
	startingMoney    int64
	defaultWeaponIDs []uint
}

func NewUserService(db *gorm.DB, users *repositories.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		db:               db,
		users:            users,
		jwtSecret:        cfg.JWTSecret,
		jwtTTL:           cfg.GetJWTTTL(),
		startingMoney:    cfg.StartingMoney,
		defaultWeaponIDs: cfg.DefaultWeaponIDs,
	}
}

// resolveRole returns the role to store. Only admins may pick one; everyone else gets RoleUser.
func resolveRole(actor *Actor, requested string) (models.Role, error) {
	if requested == "" {
		return models.RoleUser, nil
	}
	role, ok := models.ParseRole(requested)
	if !ok {
		return "", errors.New(errors.ErrCodeValidation, "invalid role")
	}
	if !actor.IsAdmin() {
		return models.RoleUser, nil
	}
	return role, nil
}

// Register creates a user with starting money and the default loadout
func (s *UserService) Register(ctx context.Context, actor *Actor, req RegisterRequest) (*models.User, error) {
	userName := security.SanitizeUserName(req.UserName)
	if userName == "" {
		return nil, errors.New(errors.ErrCodeValidation, "user name is required")
	}
	if !security.ValidateEmail(req.Email) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid email")
	}
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, err.Error())
	}
	role, err := resolveRole(actor, req.Role)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserName:     userName,
		Email:        req.Email,
		PasswordHash: hash,
		PlayerTag:    security.GeneratePlayerTag(userName),
		Money:        s.startingMoney,
		Role:         role,
	}

	var granted []uint
	err = database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if err := users.CreateUser(ctx, user); err != nil {
			return err
		}
		granted, err = users.GrantWeapons(ctx, user.ID, s.defaultWeaponIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", user.ID, "role", user.Role, "weapons_granted", len(granted))
	return user, nil
}

// Authenticate checks credentials and issues a signed token
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
		}
		return nil, "", err
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := security.GenerateJWT(user.ID, string(user.Role), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to sign token")
	}

	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// FindUserByID returns the directory projection used to decorate friend data
func (s *UserService) FindUserByID(ctx context.Context, id uint) (models.UserSummary, error) {
	return s.users.FindSummaryByID(ctx, id)
}

// ListUsers returns one page of users; page starts at 1
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.users.ListUsers(ctx, (page-1)*pageSize, pageSize)
}

// UpdateUser applies req to user id. Role and money changes need an admin actor.
func (s *UserService) UpdateUser(ctx context.Context, actor *Actor, id uint, req UpdateUserRequest) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, errors.New(errors.ErrCodeForbidden, "not allowed to update this user")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserName != nil {
		userName := security.SanitizeUserName(*req.UserName)
		if userName == "" {
			return nil, errors.New(errors.ErrCodeValidation, "user name is required")
		}
		if userName != user.UserName {
			user.UserName = userName
			user.PlayerTag = security.GeneratePlayerTag(userName)
		}
	}
	if req.Email != nil {
		if !security.ValidateEmail(*req.Email) {
			return nil, errors.New(errors.ErrCodeValidation, "invalid email")
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeValidation, err.Error())
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !actor.IsAdmin() {
			return nil, errors.New(errors.ErrCodeForbidden, "only admins can change roles")
		}
		role, err := resolveRole(actor, *req.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if req.Money != nil {
		if !actor.IsAdmin() {
			return nil, errors.New(errors.ErrCodeForbidden, "only admins can change money")
		}
		if *req.Money < 0 {
			return nil, errors.New(errors.ErrCodeValidation, "money cannot be negative")
		}
		user.Money = *req.Money
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user. The row stays behind, so the user's friend requests
// and friendships are removed in the same transaction instead of by the FK cascade.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	var requests, friendships int64
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).DeleteUser(ctx, id); err != nil {
			return err
		}

		var err error
		if requests, err = repositories.NewFriendRequestRepository(tx).DeleteAllForUser(ctx, id); err != nil {
			return err
		}
		friendships, err = repositories.NewFriendshipRepository(tx).DeleteAllForUser(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("User deleted", "user_id", id, "friend_requests_removed", requests, "friendships_removed", friendships)
	return nil
}

func (s *UserService) ListWeapons(ctx context.Context, userID uint) ([]models.Weapon, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.ListWeapons(ctx, userID)
}

// PurchaseWeapon buys weaponID for userID and returns the user with the new balance
func (s *UserService) PurchaseWeapon(ctx context.Context, userID, weaponID uint) (*models.User, error) {
	var user *models.User
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		user, err = s.users.WithTx(tx).PurchaseWeapon(ctx, userID, weaponID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Weapon purchased", "user_id", userID, "weapon_id", weaponID, "balance", user.Money)
	return user, nil
}

func (s *UserService) RemoveWeapon(ctx context.Context, userID, weaponID uint) error {
	return s.users.RemoveWeapon(ctx, userID, weaponID)
}
