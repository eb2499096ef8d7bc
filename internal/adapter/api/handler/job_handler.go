package handler

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/domain/repository"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"
)

type JobHandler struct {
	jobUseCase *usecase.JobUseCase
}

func NewJobHandler(jobUseCase *usecase.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

type createJobRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=120"`
	Company     string `json:"company" validate:"required,notblank,max=120"`
	Location    string `json:"location" validate:"required,notblank,max=120"`
	SalaryRange string `json:"salaryRange" validate:"max=60"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"max=5000"`
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
}

type updateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	job, err := h.jobUseCase.CreateJob(c.Request().Context(), uid, usecase.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := repository.JobFilter{
		Query:    c.QueryParam("q"),
		Type:     c.QueryParam("type"),
		PosterID: c.QueryParam("poster_id"),
	}

	jobs, total, err := h.jobUseCase.ListJobs(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, jobs, total, pagination.Page, pagination.PageSize)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.jobUseCase.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, job)
}

func (h *JobHandler) Apply(c echo.Context) error {
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	application, err := h.jobUseCase.Apply(c.Request().Context(), uid, c.Param("id"), req.CoverLetter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, application)
}

func (h *JobHandler) ListMyApplications(c echo.Context) error {
	uid := c.Get("uid").(string)

	applications, err := h.jobUseCase.ListMyApplications(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, applications)
}

func (h *JobHandler) ListReceivedApplications(c echo.Context) error {
	uid := c.Get("uid").(string)

	applications, err := h.jobUseCase.ListReceivedApplications(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, applications)
}

func (h *JobHandler) UpdateApplicationStatus(c echo.Context) error {
	var req updateApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	application, err := h.jobUseCase.UpdateApplicationStatus(c.Request().Context(), uid, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, application)
}
