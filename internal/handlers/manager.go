package handlers

import (
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/services"
	"gorm.io/gorm"
)

type HandlerManager struct {
	Config        *config.Config
	DB            *gorm.DB
	UserSvc       *services.UserService
	FriendReqSvc  *services.FriendRequestService
	FriendshipSvc *services.FriendshipService
	CatalogSvc    *services.CatalogService
	ScoreSvc      *services.ScoreService
}

func NewHandlerManager(
	cfg *config.Config,
	db *gorm.DB,
	userSvc *services.UserService,
	friendReqSvc *services.FriendRequestService,
	friendshipSvc *services.FriendshipService,
	catalogSvc *services.CatalogService,
	scoreSvc *services.ScoreService,
) *HandlerManager {
	return &HandlerManager{
		Config:        cfg,
		DB:            db,
		UserSvc:       userSvc,
		FriendReqSvc:  friendReqSvc,
		FriendshipSvc: friendshipSvc,
		CatalogSvc:    catalogSvc,
		ScoreSvc:      scoreSvc,
	}
}
