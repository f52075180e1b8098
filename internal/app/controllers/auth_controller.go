package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"studentdesk/internal/app/models/dto"
	"studentdesk/internal/app/services"
	"studentdesk/internal/middleware"
	"studentdesk/internal/pkg/apperrors"
)

// AuthController handles login, logout and user registration pages.
type AuthController struct {
	authService services.AuthService
	render      *Renderer
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, render *Renderer, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		render:      render,
		logger:      logger,
	}
}

// ShowLogin renders the login form.
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	c.render.HTML(ctx, http.StatusOK, "login.html", gin.H{
		"Next":     ctx.Query("next"),
		"Username": "",
	})
}

// Login handles the login form submission.
func (c *AuthController) Login(ctx *gin.Context) {
	var form dto.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleError(ctx, apperrors.NewBadRequestError("malformed form submission"))
		return
	}

	sess := middleware.GetSession(ctx)

	user, err := c.authService.Login(ctx.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			// One generic message for both unknown user and wrong
			// password.
			sess.AddFlash("Invalid username or password.", "danger")
			c.render.HTML(ctx, http.StatusOK, "login.html", gin.H{
				"Next":     ctx.Query("next"),
				"Username": form.Username,
			})
			return
		}
		middleware.HandleError(ctx, err)
		return
	}

	// A fresh identity drops all prior session state.
	sess.SetIdentity(user.ID, user.Username, string(user.Role))
	sess.AddFlash("Welcome back!", "success")

	target := safeNextPath(ctx.Query("next"))
	if target == "" {
		target = "/students"
	}
	c.render.Redirect(ctx, target)
}

// Logout clears the session.
func (c *AuthController) Logout(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)
	sess.Clear()
	sess.AddFlash("You have been logged out.", "info")
	c.render.Redirect(ctx, "/login")
}

// ShowRegister renders the registration form. The route is admin-only.
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	c.render.HTML(ctx, http.StatusOK, "register.html", gin.H{
		"Username": "",
	})
}

// Register handles the registration form submission.
func (c *AuthController) Register(ctx *gin.Context) {
	var form dto.RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleError(ctx, apperrors.NewBadRequestError("malformed form submission"))
		return
	}

	sess := middleware.GetSession(ctx)

	user, err := c.authService.Register(ctx.Request.Context(), form)
	if err != nil {
		var validationErrs services.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			for _, msg := range validationErrs {
				sess.AddFlash(msg, "danger")
			}
		case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
			sess.AddFlash("Username already exists.", "danger")
		default:
			middleware.HandleError(ctx, err)
			return
		}

		c.render.HTML(ctx, http.StatusOK, "register.html", gin.H{
			"Username": form.Username,
		})
		return
	}

	sess.AddFlash(fmt.Sprintf("User '%s' created.", user.Username), "success")
	c.render.Redirect(ctx, "/students")
}
