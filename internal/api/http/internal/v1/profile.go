package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
	"github.com/manara-transit/backend/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile", h.userIdentityMiddleware)
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
		profile.PATCH("", h.updateProfile)
		profile.POST("/verify-otp", h.verifyProfileUpdate)
	}

	api.DELETE("/account", h.userIdentityMiddleware, h.deleteAccount)
}

// currentUser reads the authenticated user id, aborting with 401 when absent.
func (h *Handler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, err := h.getUserUUID(c)
	if err != nil {
		logger.Error("get user uuid failed", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Get profile
// @Tags Profile
// @Description Current user's profile, created on first access.
// @ModuleID getProfile
// @Produce  json
// @Success 200 {object} domain.UserProfile
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	profile, err := h.services.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateProfileInput struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,phonenumber"`
}

type updateProfileResponse struct {
	Message              string                 `json:"message"`
	VerificationRequired bool                   `json:"verification_required"`
	DeliveryMethod       domain.DeliveryChannel `json:"delivery_method"`
}

// @Summary Update profile
// @Tags Profile
// @Description Changed fields are held until confirmed with an OTP through /profile/verify-otp.
// @Description A request that changes nothing returns the profile as is.
// @ModuleID updateProfile
// @Accept  json
// @Produce  json
// @Param input body updateProfileInput true "fields to change"
// @Success 200 {object} updateProfileResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /profile [put]
// @Router /profile [patch]
func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	result, err := h.services.Profiles.RequestUpdate(c.Request.Context(), userID, service.UpdateProfileInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	if !result.VerificationRequired {
		c.JSON(http.StatusOK, result.Profile)
		return
	}

	c.JSON(http.StatusOK, updateProfileResponse{
		Message:              "Please verify OTP to update profile",
		VerificationRequired: true,
		DeliveryMethod:       result.DeliveryMethod,
	})
}

type verifyProfileInput struct {
	Code string `json:"code" binding:"required,otpcode"`
}

type verifyProfileResponse struct {
	Message string              `json:"message"`
	Profile *domain.UserProfile `json:"profile"`
}

// @Summary Confirm profile update
// @Tags Profile
// @ModuleID verifyProfileUpdate
// @Accept  json
// @Produce  json
// @Param input body verifyProfileInput true "otp code"
// @Success 200 {object} verifyProfileResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /profile/verify-otp [post]
func (h *Handler) verifyProfileUpdate(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var input verifyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	profile, err := h.services.Profiles.VerifyUpdate(c.Request.Context(), userID, input.Code)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, verifyProfileResponse{
		Message: "Profile updated successfully",
		Profile: profile,
	})
}

// @Summary Delete account
// @Tags Profile
// @Description Deactivates the account. Login is refused afterwards.
// @ModuleID deleteAccount
// @Success 204
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /account [delete]
func (h *Handler) deleteAccount(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.services.Users.DeleteAccount(c.Request.Context(), userID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
