package dto

import (
	"staffhub/internal/repository"
	"staffhub/internal/usecase"

	"github.com/google/uuid"
)

type SkillEntryResponse struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Level    int       `json:"level"`
}

type PersonnelResponse struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Role            string               `json:"role"`
	ExperienceLevel string               `json:"experience_level"`
	Skills          []SkillEntryResponse `json:"skills"`
}

func NewPersonnelResponse(d usecase.PersonnelDetail) PersonnelResponse {
	skills := make([]SkillEntryResponse, 0, len(d.Skills))
	for _, s := range d.Skills {
		skills = append(skills, SkillEntryResponse{
			SkillID:  s.SkillID,
			Name:     s.SkillName,
			Category: s.Category,
			Level:    s.Level,
		})
	}
	return PersonnelResponse{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Role:            d.Role,
		ExperienceLevel: d.ExperienceLevel,
		Skills:          skills,
	}
}

func NewPersonnelListResponse(list []usecase.PersonnelDetail) []PersonnelResponse {
	out := make([]PersonnelResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewPersonnelResponse(d))
	}
	return out
}

func NewPersonnelSummaryResponse(p repository.Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.Role,
		ExperienceLevel: p.ExperienceLevel,
		Skills:          make([]SkillEntryResponse, 0),
	}
}
