package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"studentdesk/internal/middleware"
)

// Initializer prepares the datastore: schema creation plus the default
// admin seed. It must be safe to run repeatedly.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// InitializerFunc adapts a function to the Initializer interface.
type InitializerFunc func(ctx context.Context) error

// Initialize implements Initializer.
func (f InitializerFunc) Initialize(ctx context.Context) error {
	return f(ctx)
}

// HomeController handles the root redirect and first-time setup.
type HomeController struct {
	initializer Initializer
	render      *Renderer
	logger      zerolog.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(initializer Initializer, render *Renderer, logger zerolog.Logger) *HomeController {
	return &HomeController{
		initializer: initializer,
		render:      render,
		logger:      logger,
	}
}

// Home redirects to the student list for logged-in clients and to the login
// page otherwise.
func (c *HomeController) Home(ctx *gin.Context) {
	if middleware.GetSession(ctx).IsAuthenticated() {
		c.render.Redirect(ctx, "/students")
		return
	}
	c.render.Redirect(ctx, "/login")
}

// InitDB runs schema setup and seeds the default admin account. Convenience
// route for first-time setup; repeat calls are no-ops.
func (c *HomeController) InitDB(ctx *gin.Context) {
	if err := c.initializer.Initialize(ctx.Request.Context()); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	sess := middleware.GetSession(ctx)
	sess.AddFlash("Database initialized. Admin user created (username='admin', password='admin123'). Change the password!", "info")
	c.render.Redirect(ctx, "/login")
}
