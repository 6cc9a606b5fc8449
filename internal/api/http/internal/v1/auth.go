package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/request-otp", h.requestOTP)
		auth.POST("/verify-otp", h.verifyOTP)
		auth.POST("/token/refresh", h.refreshTokens)
	}
}

type userResponse struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	FullName    string          `json:"full_name"`
	UserType    domain.UserType `json:"user_type"`
	IsVerified  bool            `json:"is_verified"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName,
		UserType:    u.UserType,
		IsVerified:  u.IsVerified,
	}
}

type tokensResponse struct {
	Access  string    `json:"access"`
	Refresh uuid.UUID `json:"refresh"`
}

func newTokensResponse(t *service.Tokens) tokensResponse {
	return tokensResponse{Access: t.AccessToken, Refresh: t.RefreshToken}
}

type registerInput struct {
	Email           string          `json:"email" binding:"required,email,max=255"`
	PhoneNumber     string          `json:"phone_number" binding:"required,phonenumber"`
	FullName        string          `json:"full_name" binding:"required,max=255"`
	UserType        domain.UserType `json:"user_type" binding:"omitempty,oneof=COMMUTER SACCO_OWNER OPERATOR"`
	Password        string          `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string          `json:"confirm_password" binding:"required,eqfield=Password"`
}

type registerResponse struct {
	User    userResponse `json:"user"`
	Message string       `json:"message"`
}

// @Summary Register
// @Tags Auth
// @Description Create an unverified account. Verify it through request-otp and verify-otp.
// @ModuleID register
// @Accept  json
// @Produce  json
// @Param input body registerInput true "registration data"
// @Success 201 {object} registerResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), service.RegisterInput{
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		FullName:    input.FullName,
		UserType:    input.UserType,
		Password:    input.Password,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		User:    newUserResponse(user),
		Message: "User registered successfully. Please verify your OTP.",
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Login
// @Tags Auth
// @Description Exchange email and password for a token pair. Unverified accounts get 403.
// @ModuleID login
// @Accept  json
// @Produce  json
// @Param input body loginInput true "credentials"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.Login(c.Request.Context(), service.LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: c.Request.UserAgent(),
		UserIP:    c.ClientIP(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokensResponse(tokens))
}

type requestOTPInput struct {
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phonenumber"`
}

type requestOTPResponse struct {
	Message        string                 `json:"message"`
	ExpiresIn      string                 `json:"expires_in"`
	Contact        string                 `json:"contact"`
	DeliveryMethod domain.DeliveryChannel `json:"delivery_method"`
}

// @Summary Request OTP
// @Tags Auth
// @Description Send a one-time code to the account named by exactly one of email or phone_number.
// @Description The code goes out by SMS and falls back to email.
// @ModuleID requestOTP
// @Accept  json
// @Produce  json
// @Param input body requestOTPInput true "email or phone number"
// @Success 200 {object} requestOTPResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/request-otp [post]
func (h *Handler) requestOTP(c *gin.Context) {
	var input requestOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	requester := service.Requester{Email: input.Email, PhoneNumber: input.PhoneNumber}
	if _, err := requester.Identifier(); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	result, err := h.services.Users.RequestOTP(c.Request.Context(), service.RequestOTPInput{Requester: requester})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, requestOTPResponse{
		Message:        "OTP sent successfully",
		ExpiresIn:      fmt.Sprintf("%d minutes", result.ExpiresIn),
		Contact:        result.Contact,
		DeliveryMethod: result.DeliveryMethod,
	})
}

type verifyOTPInput struct {
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phonenumber"`
	Code        string `json:"code" binding:"required,otpcode"`
}

type verifyOTPResponse struct {
	Message    string         `json:"message"`
	IsVerified bool           `json:"is_verified"`
	Tokens     tokensResponse `json:"tokens"`
}

// @Summary Verify OTP
// @Tags Auth
// @Description Check a code, mark the account verified and issue tokens.
// @Description Three wrong codes lock verification until a new code is requested.
// @ModuleID verifyOTP
// @Accept  json
// @Produce  json
// @Param input body verifyOTPInput true "identifier and code"
// @Success 200 {object} verifyOTPResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/verify-otp [post]
func (h *Handler) verifyOTP(c *gin.Context) {
	var input verifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	requester := service.Requester{Email: input.Email, PhoneNumber: input.PhoneNumber}
	if _, err := requester.Identifier(); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.VerifyOTP(c.Request.Context(), service.VerifyOTPInput{
		Requester: requester,
		Code:      input.Code,
		UserAgent: c.Request.UserAgent(),
		UserIP:    c.ClientIP(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, verifyOTPResponse{
		Message:    "OTP verified successfully",
		IsVerified: true,
		Tokens:     newTokensResponse(tokens),
	})
}

type refreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// @Summary Refresh tokens
// @Tags Auth
// @Description Rotate the refresh session and issue a new token pair.
// @ModuleID refreshTokens
// @Accept  json
// @Produce  json
// @Param input body refreshInput true "refresh token"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/token/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.RefreshTokens(c.Request.Context(), input.Refresh, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokensResponse(tokens))
}
