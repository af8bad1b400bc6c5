package dto

import (
	"time"

	"staffhub/internal/repository"
	"staffhub/internal/usecase"

	"github.com/google/uuid"
)

type RequirementResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	MinLevel  int       `json:"min_level"`
}

type AssigneeResponse struct {
	PersonnelID   uuid.UUID `json:"personnel_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	AllocationPct int       `json:"allocation_pct"`
}

type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`

	Requirements []RequirementResponse `json:"requirements,omitempty"`
	Assignees    []AssigneeResponse    `json:"assignees,omitempty"`
}

func NewProjectResponse(p repository.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

func NewProjectListResponse(list []repository.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProjectResponse(p))
	}
	return out
}

func NewProjectDetailResponse(d usecase.ProjectDetail) ProjectResponse {
	resp := NewProjectResponse(d.Project)

	resp.Requirements = make([]RequirementResponse, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		resp.Requirements = append(resp.Requirements, RequirementResponse{
			SkillID:   r.SkillID,
			SkillName: r.SkillName,
			MinLevel:  r.MinLevel,
		})
	}

	resp.Assignees = make([]AssigneeResponse, 0, len(d.Assignees))
	for _, a := range d.Assignees {
		resp.Assignees = append(resp.Assignees, AssigneeResponse{
			PersonnelID:   a.PersonnelID,
			Name:          a.Name,
			Role:          a.Role,
			AllocationPct: a.AllocationPct,
		})
	}
	return resp
}
