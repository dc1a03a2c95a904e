package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/services"
)

func (h *HandlerManager) ListWeaponTypes(c *gin.Context) {
	types, err := h.CatalogSvc.ListWeaponTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *HandlerManager) GetWeaponType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	weaponType, err := h.CatalogSvc.GetWeaponType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weaponType)
}

func (h *HandlerManager) CreateWeaponType(c *gin.Context) {
	var body services.WeaponTypeInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	weaponType, err := h.CatalogSvc.CreateWeaponType(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, weaponType)
}

func (h *HandlerManager) UpdateWeaponType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body services.WeaponTypeInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	weaponType, err := h.CatalogSvc.UpdateWeaponType(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weaponType)
}

func (h *HandlerManager) DeleteWeaponType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.CatalogSvc.DeleteWeaponType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListWeapons accepts an optional weaponTypeId filter.
func (h *HandlerManager) ListWeapons(c *gin.Context) {
	var typeID uint
	if raw := c.Query("weaponTypeId"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid weaponTypeId")
			return
		}
		typeID = uint(value)
	}

	weapons, err := h.CatalogSvc.ListWeapons(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapons)
}

func (h *HandlerManager) GetWeapon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	weapon, err := h.CatalogSvc.GetWeapon(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapon)
}

func (h *HandlerManager) CreateWeapon(c *gin.Context) {
	var body services.WeaponInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	weapon, err := h.CatalogSvc.CreateWeapon(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, weapon)
}

func (h *HandlerManager) UpdateWeapon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body services.WeaponInput
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	weapon, err := h.CatalogSvc.UpdateWeapon(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapon)
}

func (h *HandlerManager) DeleteWeapon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.CatalogSvc.DeleteWeapon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
