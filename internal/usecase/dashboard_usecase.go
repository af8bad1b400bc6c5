package usecase

import (
	"context"
	"sort"
	"time"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

const forecastWeeks = 12

type DashboardSummary struct {
	ProjectCounts []repository.StatusCount `json:"project_counts"`
	TopSkills     []repository.SkillDemand `json:"top_skills"`
	TopPerformer  *repository.TopPerformer `json:"top_performer"`
}

// PersonForecast is one person's projected weekly load, as a percentage
// of capacity per week.
type PersonForecast struct {
	PersonnelID uuid.UUID `json:"personnel_id"`
	Name        string    `json:"name"`
	WeeklyLoad  []int     `json:"weekly_load"`
}

type UtilizationForecast struct {
	WeekStarts []time.Time      `json:"week_starts"`
	People     []PersonForecast `json:"people"`
}

type DashboardUsecase interface {
	Summary(ctx context.Context) (DashboardSummary, error)
	Forecast(ctx context.Context) (UtilizationForecast, error)
}

type Dashboard struct {
	dashboards repository.DashboardRepository

	now func() time.Time
}

func NewDashboardUsecase(dashboards repository.DashboardRepository) *Dashboard {
	return &Dashboard{dashboards: dashboards, now: time.Now}
}

func (u *Dashboard) Summary(ctx context.Context) (DashboardSummary, error) {
	counts, err := u.dashboards.ProjectStatusCounts(ctx)
	if err != nil {
		return DashboardSummary{}, ErrInternal
	}
	skills, err := u.dashboards.TopSkillDemand(ctx, 6)
	if err != nil {
		return DashboardSummary{}, ErrInternal
	}

	out := DashboardSummary{ProjectCounts: counts, TopSkills: skills}

	tp, found, err := u.dashboards.TopPerformer(ctx)
	if err != nil {
		return DashboardSummary{}, ErrInternal
	}
	if found {
		out.TopPerformer = &tp
	}
	return out, nil
}

// Forecast projects each person's open commitments over the coming
// weeks. An assignment without dates is assumed to run through the
// whole horizon.
func (u *Dashboard) Forecast(ctx context.Context) (UtilizationForecast, error) {
	start := u.now().UTC().Truncate(24 * time.Hour)

	asgns, err := u.dashboards.OpenForecastAssignments(ctx, start)
	if err != nil {
		return UtilizationForecast{}, ErrInternal
	}

	weekStarts := make([]time.Time, forecastWeeks)
	for w := range weekStarts {
		weekStarts[w] = start.AddDate(0, 0, 7*w)
	}

	type entry struct {
		name string
		load []int
	}
	byPerson := make(map[uuid.UUID]*entry)
	for _, a := range asgns {
		e := byPerson[a.PersonnelID]
		if e == nil {
			e = &entry{name: a.PersonnelName, load: make([]int, forecastWeeks)}
			byPerson[a.PersonnelID] = e
		}
		for w, ws := range weekStarts {
			we := ws.AddDate(0, 0, 7)
			if a.StartDate != nil && !a.StartDate.Before(we) {
				continue
			}
			if a.EndDate != nil && a.EndDate.Before(ws) {
				continue
			}
			e.load[w] += a.AllocationPct
		}
	}

	people := make([]PersonForecast, 0, len(byPerson))
	for id, e := range byPerson {
		people = append(people, PersonForecast{PersonnelID: id, Name: e.name, WeeklyLoad: e.load})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })

	return UtilizationForecast{WeekStarts: weekStarts, People: people}, nil
}
