package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// userHandler serves the caller's own profile and KYC uploads.
type userHandler struct {
	userService *services.UserService
}

func newUserHandler(us *services.UserService) *userHandler {
	return &userHandler{userService: us}
}

func registerUserRoutes(rg *gin.RouterGroup, userService *services.UserService) {
	h := newUserHandler(userService)

	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
	rg.POST("/kyc/photos", h.uploadKYCPhoto)
}

func (h *userHandler) getProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile retrieved", dto.ToUserResponse(user))
}

func (h *userHandler) updateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile updated", dto.ToUserResponse(user))
}

func (h *userHandler) uploadKYCPhoto(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UploadKYCPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UploadKYCPhoto(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Photo recorded", dto.ToUserResponse(user))
}
