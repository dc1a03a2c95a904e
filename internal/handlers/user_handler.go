package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/services"
)

type signInBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type purchaseBody struct {
	WeaponID uint `json:"weaponId" binding:"required"`
}

type userListResponse struct {
	Users    []models.User `json:"users"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

func (h *HandlerManager) SignIn(c *gin.Context) {
	var body signInBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	user, token, err := h.UserSvc.Authenticate(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signInResponse{User: user, Token: token})
}

// Register is open to anonymous callers; only an admin token can set a role.
func (h *HandlerManager) Register(c *gin.Context) {
	var body services.RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.UserSvc.Register(c.Request.Context(), middleware.ActorFrom(c), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *HandlerManager) ListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	users, total, err := h.UserSvc.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(users) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, userListResponse{Users: users, Total: total, Page: page, PageSize: pageSize})
}

func (h *HandlerManager) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, id); !ok {
		return
	}

	user, err := h.UserSvc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser leaves the role and balance checks to the service.
func (h *HandlerManager) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body services.UpdateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.UserSvc.UpdateUser(c.Request.Context(), middleware.ActorFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HandlerManager) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, id); !ok {
		return
	}

	if err := h.UserSvc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HandlerManager) ListUserWeapons(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, id); !ok {
		return
	}

	weapons, err := h.UserSvc.ListWeapons(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapons)
}

func (h *HandlerManager) PurchaseWeapon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, id); !ok {
		return
	}

	var body purchaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "weaponId is required")
		return
	}

	user, err := h.UserSvc.PurchaseWeapon(c.Request.Context(), id, body.WeaponID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HandlerManager) RemoveWeapon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	weaponID, ok := paramID(c, "weaponId")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, id); !ok {
		return
	}

	if err := h.UserSvc.RemoveWeapon(c.Request.Context(), id, weaponID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
