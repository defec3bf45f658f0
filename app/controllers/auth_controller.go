package controllers

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/bind"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Register(in)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "user_id", result.User.ID, "role", result.User.Role)
	response.Created(w, result)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(in)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, result)
}

// Me handles GET /api/auth/me. It backs the guard's one-shot check: a
// valid token answers with the account, and the response carries
// whether this account may enter the dashboard.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, err := c.auth.Me(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"user":        user,
		"adminAccess": rbac.CanAccessAdmin(user.Role),
	})
}
