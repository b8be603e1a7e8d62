package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartserve-api/models"
	"smartserve-api/response"
	"smartserve-api/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,min=10,max=15"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  role,
	}
	if err := h.auth.Register(&user); err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			response.Error(c, http.StatusConflict, conflict.Message)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", user)
}

// Login sends an OTP to the user's email. When the mailer is not configured
// the code is echoed in the response (dev mode).
func (h *AuthHandler) Login(c *gin.Context) {
	h.sendOTP(c, h.auth.SendOTP, "OTP sent to your email")
}

// AdminLogin sends an OTP only when the email belongs to an admin account.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.sendOTP(c, h.auth.SendAdminOTP, "OTP sent to your admin email")
}

func (h *AuthHandler) sendOTP(c *gin.Context, send func(string) (string, error), sentMessage string) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	devCode, err := send(req.Email)
	if err != nil {
		var notFound *services.NotFoundError
		var unavailable *services.ServiceUnavailableError
		switch {
		case errors.As(err, &notFound):
			response.Error(c, http.StatusNotFound, notFound.Message)
		case errors.As(err, &unavailable):
			response.Error(c, http.StatusServiceUnavailable, unavailable.Message)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to send OTP")
		}
		return
	}

	payload := gin.H{"email": req.Email}
	message := sentMessage
	if devCode != "" {
		payload["dev_otp"] = devCode
		message = "Dev mode — use the OTP shown on screen"
	}
	response.Success(c, http.StatusOK, message, payload)
}

// VerifyOTP exchanges a valid code for an access token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		var unauthorized *services.UnauthorizedError
		var notFound *services.NotFoundError
		switch {
		case errors.As(err, &unauthorized):
			response.Error(c, http.StatusUnauthorized, unauthorized.Message)
		case errors.As(err, &notFound):
			// The account vanished between code issuance and verification;
			// still an authentication failure from the caller's view.
			response.Error(c, http.StatusUnauthorized, notFound.Message)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to verify OTP")
		}
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{"access_token": token})
}
