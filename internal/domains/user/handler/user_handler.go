package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diary-backend/internal/domains/user/model"
	"diary-backend/internal/domains/user/service"
	"diary-backend/internal/shared/response"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if err == model.ErrUsernameTaken {
			response.ErrorWithDetails(c, http.StatusConflict, model.ToErrorCode(err), err.Error(),
				map[string]string{"username": "this username is already taken"})
			return
		}
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	c.Header("Location", "/api/v1/users/"+u.ID.String())
	response.Success(c, http.StatusCreated, "User registered successfully", u)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Login successful", tokens)
}

// Refresh handles POST /auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", tokens)
}
