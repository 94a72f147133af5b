// Package http exposes the job board over a gin router.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/apperr"
	"job-board/internal/service"
)

// Config holds transport level settings.
type Config struct {
	CookieLifetime time.Duration
	CookieSecure   bool
	AllowedOrigins []string
	MaxResumeBytes int64
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	jobs         service.JobService
	applications service.ApplicationService
	cfg          Config
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewHandler(
	users service.UserService,
	jobs service.JobService,
	applications service.ApplicationService,
	cfg Config,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		users:        users,
		jobs:         jobs,
		applications: applications,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(
		requestLogger(h.log),
		corsMiddleware(h.cfg.AllowedOrigins),
		errorMiddleware(h.log),
		recoveryMiddleware(h.log),
	)
	router.NoRoute(func(c *gin.Context) {
		c.Error(apperr.NotFound("Route not found"))
	})

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
		})

		user := api.Group("/user")
		user.POST("/register", h.register)
		user.POST("/login", h.login)
		user.GET("/logout", h.authenticate, h.logout)
		user.GET("/getuser", h.authenticate, h.getUser)

		job := api.Group("/job")
		job.GET("/getall", h.listJobs)
		job.POST("/post", h.authenticate, h.postJob)
		job.GET("/getmyjobs", h.authenticate, h.myJobs)
		job.PUT("/expire/:id", h.authenticate, h.expireJob)
		job.GET("/:id", h.getJob)

		application := api.Group("/application", h.authenticate)
		application.POST("/post", h.submitApplication)
		application.GET("/employer/getall", h.employerApplications)
		application.GET("/jobseeker/getall", h.jobseekerApplications)
		application.DELETE("/delete/:id", h.deleteApplication)
	}
}
