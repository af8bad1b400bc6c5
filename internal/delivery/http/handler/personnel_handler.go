package handler

import (
	"errors"

	"staffhub/internal/delivery/http/dto"
	"staffhub/internal/delivery/http/middleware"
	"staffhub/internal/pkg/response"
	"staffhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PersonnelHandler struct {
	uc usecase.PersonnelUsecase
}

type personnelRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ExperienceLevel string `json:"experience_level"`
}

type proficiencyRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Level   string    `json:"level"`
}

func NewPersonnelHandler(uc usecase.PersonnelUsecase) *PersonnelHandler {
	return &PersonnelHandler{uc: uc}
}

func (h *PersonnelHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/skills", h.SetProficiency)
}

func (h *PersonnelHandler) List(c fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonnelListResponse(list))
}

func (h *PersonnelHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonnelResponse(detail))
}

func (h *PersonnelHandler) Create(c fiber.Ctx) error {
	var req personnelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), usecase.PersonnelInput{
		Name:            req.Name,
		Email:           req.Email,
		Role:            req.Role,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewPersonnelSummaryResponse(created))
}

func (h *PersonnelHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req personnelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, usecase.PersonnelInput{
		Name:            req.Name,
		Email:           req.Email,
		Role:            req.Role,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonnelSummaryResponse(updated))
}

func (h *PersonnelHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *PersonnelHandler) SetProficiency(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req proficiencyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.SetProficiency(c.Context(), id, req.SkillID, req.Level); err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapPersonnelUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPersonnelNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Personnel not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
