package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/service"
)

func (h *Handler) postJob(c *gin.Context) {
	var req postJobRequest
	if err := bind(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobs.Post(c.Request.Context(), currentUser(c), service.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		FixedSalary: req.FixedSalary.v,
		SalaryFrom:  req.SalaryFrom.v,
		SalaryTo:    req.SalaryTo.v,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job Posted Successfully!",
		"job":     jobToResponse(*job),
	})
}

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]JobResponse, len(jobs))
	for i := range jobs {
		resp[i] = jobToResponse(jobs[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "jobs": resp})
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "job": jobToResponse(*job)})
}

func (h *Handler) myJobs(c *gin.Context) {
	jobs, err := h.jobs.ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]JobResponse, len(jobs))
	for i := range jobs {
		resp[i] = jobToResponse(jobs[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "jobs": resp})
}

func (h *Handler) expireJob(c *gin.Context) {
	job, err := h.jobs.Expire(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job Expired!",
		"job":     jobToResponse(*job),
	})
}
