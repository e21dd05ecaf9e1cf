// Package handler translates HTTP requests into account operations and
// account results into status codes and JSON payloads.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/andreihelo/simple-login-api/internal/domain"
	"github.com/andreihelo/simple-login-api/internal/service"
)

// AccountHandler exposes the user lifecycle endpoints.
type AccountHandler struct {
	Accounts *service.AccountService
}

// NewAccountHandler creates the handler set.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

// signupRequest declares the only fields signup accepts; anything else in
// the body is dropped at the type boundary.
type signupRequest struct {
	Username             string `form:"username" json:"username"`
	FirstName            string `form:"first_name" json:"first_name"`
	LastName             string `form:"last_name" json:"last_name"`
	Password             string `form:"password" json:"password"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
}

type signinRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type updateRequest struct {
	FirstName            *string `form:"first_name" json:"first_name"`
	LastName             *string `form:"last_name" json:"last_name"`
	Password             *string `form:"password" json:"password"`
	PasswordConfirmation *string `form:"password_confirmation" json:"password_confirmation"`
}

// signupResponse redacts the id, the password pair, and the token from the
// created record.
type signupResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// profileResponse is the read-path shape: token included, id and password
// fields never exposed.
type profileResponse struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Token     *string `json:"token"`
}

// SignUp creates a new user.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		JSONStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Accounts.SignUp(c.Request.Context(), service.SignUpInput{
		Username:             req.Username,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, signupResponse{
		Username:  created.Username,
		FirstName: created.FirstName,
		LastName:  created.LastName,
	})
}

// SignIn authenticates a user and returns the record with its new token.
func (h *AccountHandler) SignIn(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBind(&req); err != nil {
		JSONStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Accounts.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// Profile returns the user identified by the path token.
func (h *AccountHandler) Profile(c *gin.Context) {
	user, err := h.Accounts.Profile(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateProfile merges the supplied fields into the stored record.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBind(&req); err != nil {
		JSONStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Accounts.UpdateProfile(c.Request.Context(), c.Param("token"), service.UpdateInput{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// SignOut clears the session token.
func (h *AccountHandler) SignOut(c *gin.Context) {
	if err := h.Accounts.SignOut(c.Request.Context(), c.Param("token")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete permanently removes the user.
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.Accounts.Delete(c.Request.Context(), c.Param("token")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// JSONStatus writes the uniform failure body.
func JSONStatus(c *gin.Context, code int, reason any) {
	c.JSON(code, gin.H{"status": code, "reason": reason})
}

func (h *AccountHandler) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		JSONStatus(c, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		JSONStatus(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		JSONStatus(c, http.StatusNotFound, "Not found")
	default:
		zap.L().Error("account operation failed", zap.Error(err))
		JSONStatus(c, http.StatusInternalServerError, err.Error())
	}
}

func newProfileResponse(user domain.User) profileResponse {
	return profileResponse{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     user.Token,
	}
}
