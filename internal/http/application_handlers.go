package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/apperr"
	"job-board/internal/service"
)

const resumeField = "resume"

// multipart overhead allowed on top of the résumé itself
const formOverhead = 1 << 20

func (h *Handler) submitApplication(c *gin.Context) {
	user := currentUser(c)
	if h.cfg.MaxResumeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxResumeBytes+formOverhead)
	}

	var resume *service.ResumeFile
	fh, err := c.FormFile(resumeField)
	switch {
	case err == nil:
		if h.cfg.MaxResumeBytes > 0 && fh.Size > h.cfg.MaxResumeBytes {
			c.Error(apperr.Validation(fmt.Sprintf("Resume file cannot exceed %d bytes.", h.cfg.MaxResumeBytes)))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.Error(apperr.Internal("open resume", err))
			return
		}
		defer f.Close()
		resume = &service.ResumeFile{Filename: fh.Filename, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// reported by the service once the role check has passed
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperr.Validation(fmt.Sprintf("Resume file cannot exceed %d bytes.", h.cfg.MaxResumeBytes)))
			return
		}
		c.Error(apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
		return
	}

	app, err := h.applications.Submit(c.Request.Context(), user, service.SubmitApplicationInput{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		CoverLetter: c.PostForm("coverLetter"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		JobID:       c.PostForm("jobId"),
	}, resume)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Application Submitted!",
		"application": applicationToResponse(*app),
	})
}

func (h *Handler) employerApplications(c *gin.Context) {
	apps, err := h.applications.ListForEmployer(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applications": applicationsToResponse(apps)})
}

func (h *Handler) jobseekerApplications(c *gin.Context) {
	apps, err := h.applications.ListForSeeker(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applications": applicationsToResponse(apps)})
}

func (h *Handler) deleteApplication(c *gin.Context) {
	if err := h.applications.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Application Deleted!"})
}
