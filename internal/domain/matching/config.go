package matching

// Config carries the tunable constants of the scoring engine. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// Capacity heuristics for utilization. One concurrent project is
	// assumed to consume ProjectLoadHours out of WeeklyCapacityHours.
	WeeklyCapacityHours float64
	ProjectLoadHours    float64

	// FallbackLoadPct is the per-project utilization percentage applied
	// when date windows are unavailable.
	FallbackLoadPct int

	// Tier thresholds on the overall match score.
	BestFitThreshold   int
	NearMatchThreshold int

	// Composite weights when a performance signal exists.
	FitWeight          float64
	AvailabilityWeight float64
	PerformanceWeight  float64

	// Composite weights when the candidate has no rating history.
	NoHistoryFitWeight          float64
	NoHistoryAvailabilityWeight float64
}

func DefaultConfig() Config {
	return Config{
		WeeklyCapacityHours: 45,
		ProjectLoadHours:    15,
		FallbackLoadPct:     33,
		BestFitThreshold:    80,
		NearMatchThreshold:  50,

		FitWeight:          0.5,
		AvailabilityWeight: 0.3,
		PerformanceWeight:  0.2,

		NoHistoryFitWeight:          0.6,
		NoHistoryAvailabilityWeight: 0.4,
	}
}

// loadRatio is the fraction of weekly capacity one overlapping project
// is assumed to consume.
func (c Config) loadRatio() float64 {
	if c.WeeklyCapacityHours <= 0 {
		return 0
	}
	return c.ProjectLoadHours / c.WeeklyCapacityHours
}
