package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/models"
)

type createFriendRequestBody struct {
	RequesterID uint `json:"requesterId"`
	ReceiverID  uint `json:"receiverId" binding:"required"`
}

type updateFriendRequestBody struct {
	Status string `json:"status" binding:"required"`
}

func requestViews(requests []models.FriendRequest) []models.FriendRequestView {
	views := make([]models.FriendRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, requests[i].View())
	}
	return views
}

// ListSentRequests handles GET /api/friendreq/requester/:userId
func (h *HandlerManager) ListSentRequests(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, userID); !ok {
		return
	}

	requests, err := h.FriendReqSvc.ListPendingByRequester(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, requestViews(requests))
}

// ListReceivedRequests handles GET /api/friendreq/receiver/:userId
func (h *HandlerManager) ListReceivedRequests(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, userID); !ok {
		return
	}

	requests, err := h.FriendReqSvc.ListPendingByReceiver(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, requestViews(requests))
}

func (h *HandlerManager) GetFriendRequest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	request, err := h.FriendReqSvc.FindRequestByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if !actor.IsAdmin() && !request.Involves(actor.UserID) {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, request.View())
}

// CreateFriendRequest sends a request from requesterId, which defaults to the caller.
func (h *HandlerManager) CreateFriendRequest(c *gin.Context) {
	var body createFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	actor := middleware.ActorFrom(c)
	if body.RequesterID == 0 {
		body.RequesterID = actor.UserID
	}
	if !actor.CanAccessUser(body.RequesterID) {
		forbidden(c)
		return
	}

	request, err := h.FriendReqSvc.CreateRequest(c.Request.Context(), body.RequesterID, body.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request.View())
}

// UpdateFriendRequest lets either participant (or an admin) resolve a request.
func (h *HandlerManager) UpdateFriendRequest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body updateFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	status, ok := models.ParseFriendRequestStatus(body.Status)
	if !ok {
		badRequest(c, "status must be pending, accepted or declined")
		return
	}

	ctx := c.Request.Context()
	current, err := h.FriendReqSvc.FindRequestByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	actor := middleware.ActorFrom(c)
	if !actor.IsAdmin() && !current.Involves(actor.UserID) {
		forbidden(c)
		return
	}

	updated, err := h.FriendReqSvc.UpdateStatus(ctx, id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.View())
}

func (h *HandlerManager) DeleteFriendRequest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.FriendReqSvc.DeleteRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted.View())
}

// ListFriends handles GET /api/users/:id/friends
func (h *HandlerManager) ListFriends(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, userID); !ok {
		return
	}

	friends, err := h.FriendshipSvc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// Unfriend handles DELETE /api/users/:id/friends/:friendId
func (h *HandlerManager) Unfriend(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	friendID, ok := paramID(c, "friendId")
	if !ok {
		return
	}
	if _, ok := requireUserAccess(c, userID); !ok {
		return
	}

	removed, err := h.FriendshipSvc.Unfriend(c.Request.Context(), userID, friendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed.View())
}
