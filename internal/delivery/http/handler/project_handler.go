package handler

import (
	"errors"
	"strings"
	"time"

	"staffhub/internal/delivery/http/dto"
	"staffhub/internal/delivery/http/middleware"
	"staffhub/internal/pkg/response"
	"staffhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc       usecase.ProjectUsecase
	matching usecase.MatchingUsecase
}

type requirementRequest struct {
	SkillID  uuid.UUID `json:"skill_id"`
	MinLevel int       `json:"min_level"`
}

type projectRequest struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Status       string               `json:"status"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Requirements []requirementRequest `json:"requirements"`
}

type assignRequest struct {
	PersonnelID   uuid.UUID `json:"personnel_id"`
	AllocationPct int       `json:"allocation_pct"`
}

type ratingRequest struct {
	Ratings []ratingEntryRequest `json:"ratings"`
}

type ratingEntryRequest struct {
	PersonnelID uuid.UUID `json:"personnel_id"`
	SkillID     uuid.UUID `json:"skill_id"`
	Rating      int       `json:"rating"`
}

func NewProjectHandler(uc usecase.ProjectUsecase, matching usecase.MatchingUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc, matching: matching}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)

	r.Get("/:id/matches", h.Matches)
	r.Post("/:id/requirements", h.AddRequirement)
	r.Post("/:id/assignments", h.Assign)
	r.Delete("/:id/assignments/:personnelId", h.Unassign)
	r.Post("/:id/ratings", h.Rate)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.uc.List(c.Context())
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectListResponse(projects))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectDetailResponse(detail))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	in, err := bindProjectInput(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewProjectResponse(created))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	in, err := bindProjectInput(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(updated))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Matches returns the tiered candidate list for staffing this project.
func (h *ProjectHandler) Matches(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.matching.ComputeMatches(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(res))
}

func (h *ProjectHandler) AddRequirement(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req requirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.AddRequirement(c.Context(), id, usecase.RequirementInput{
		SkillID:  req.SkillID,
		MinLevel: req.MinLevel,
	}); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, nil)
}

func (h *ProjectHandler) Assign(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Assign(c.Context(), id, req.PersonnelID, req.AllocationPct); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, nil)
}

func (h *ProjectHandler) Unassign(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	personnelID, err := uuidParam(c, "personnelId")
	if err != nil {
		return err
	}

	if err := h.uc.Unassign(c.Context(), id, personnelID); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProjectHandler) Rate(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entries := make([]usecase.RatingEntry, 0, len(req.Ratings))
	for _, e := range req.Ratings {
		entries = append(entries, usecase.RatingEntry{
			PersonnelID: e.PersonnelID,
			SkillID:     e.SkillID,
			Rating:      e.Rating,
		})
	}

	if err := h.uc.Rate(c.Context(), id, entries); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, nil)
}

func bindProjectInput(c fiber.Ctx) (usecase.ProjectInput, error) {
	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.ProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return usecase.ProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid start_date", nil, err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return usecase.ProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid end_date", nil, err)
	}

	reqs := make([]usecase.RequirementInput, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		reqs = append(reqs, usecase.RequirementInput{SkillID: r.SkillID, MinLevel: r.MinLevel})
	}

	return usecase.ProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		StartDate:    start,
		EndDate:      end,
		Requirements: reqs,
	}, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339; an empty string is an open
// bound.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func mapProjectUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrPersonnelNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Personnel not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assignment not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyAssigned):
		return middleware.NewAppError(fiber.StatusConflict, "Personnel already assigned", nil, err)
	case errors.Is(err, usecase.ErrProjectNotCompleted):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Project is not completed", nil, err)
	case errors.Is(err, usecase.ErrNotOnRoster):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Personnel is not on the project roster", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
