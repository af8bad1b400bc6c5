package usecase

import (
	"context"
	"testing"
	"time"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

type mockDashboardRepo struct {
	counts    []repository.StatusCount
	demand    []repository.SkillDemand
	performer repository.TopPerformer
	hasTop    bool
	forecast  []repository.ForecastAssignment
}

func (m mockDashboardRepo) ProjectStatusCounts(context.Context) ([]repository.StatusCount, error) {
	return m.counts, nil
}

func (m mockDashboardRepo) TopSkillDemand(context.Context, int) ([]repository.SkillDemand, error) {
	return m.demand, nil
}

func (m mockDashboardRepo) TopPerformer(context.Context) (repository.TopPerformer, bool, error) {
	return m.performer, m.hasTop, nil
}

func (m mockDashboardRepo) OpenForecastAssignments(context.Context, time.Time) ([]repository.ForecastAssignment, error) {
	return m.forecast, nil
}

func TestDashboardUsecase_Summary_NoPerformer(t *testing.T) {
	uc := NewDashboardUsecase(mockDashboardRepo{
		counts: []repository.StatusCount{{Status: repository.StatusActive, Count: 2}},
	})

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.TopPerformer != nil {
		t.Fatalf("expected nil top performer, got %+v", summary.TopPerformer)
	}
	if len(summary.ProjectCounts) != 1 {
		t.Fatalf("expected 1 status count, got %d", len(summary.ProjectCounts))
	}
}

func TestDashboardUsecase_Forecast_WindowedAssignment(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	personID := uuid.New()

	// Ends four weeks after the horizon start, on week 4's boundary.
	end := now.AddDate(0, 0, 28)
	uc := NewDashboardUsecase(mockDashboardRepo{
		forecast: []repository.ForecastAssignment{
			{PersonnelID: personID, PersonnelName: "Ana", StartDate: &now, EndDate: &end, AllocationPct: 50},
		},
	})
	uc.now = func() time.Time { return now }

	fc, err := uc.Forecast(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(fc.WeekStarts) != forecastWeeks {
		t.Fatalf("expected %d weeks, got %d", forecastWeeks, len(fc.WeekStarts))
	}
	if len(fc.People) != 1 {
		t.Fatalf("expected 1 person, got %d", len(fc.People))
	}

	load := fc.People[0].WeeklyLoad
	for w := 0; w < 4; w++ {
		if load[w] != 50 {
			t.Fatalf("week %d: expected load 50, got %d", w, load[w])
		}
	}
	for w := 5; w < forecastWeeks; w++ {
		if load[w] != 0 {
			t.Fatalf("week %d: expected load 0, got %d", w, load[w])
		}
	}
}

func TestDashboardUsecase_Forecast_UndatedAssignmentFillsHorizon(t *testing.T) {
	personID := uuid.New()
	uc := NewDashboardUsecase(mockDashboardRepo{
		forecast: []repository.ForecastAssignment{
			{PersonnelID: personID, PersonnelName: "Ben", AllocationPct: 100},
		},
	})

	fc, err := uc.Forecast(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for w, load := range fc.People[0].WeeklyLoad {
		if load != 100 {
			t.Fatalf("week %d: expected load 100, got %d", w, load)
		}
	}
}
