package models

// PeriodStats is a summed attempt fact over one date range.
type PeriodStats struct {
	Total     int            `json:"total"`
	ByProduct map[string]int `json:"by_product"`
}

// DayWeekMonthStats bundles the three standard ranges an agent sees in
// the stats screen: today, ISO-week-to-date, month-to-date.
type DayWeekMonthStats struct {
	Today PeriodStats `json:"today"`
	Week  PeriodStats `json:"week"`
	Month PeriodStats `json:"month"`
}

// RankingEntry is one row of the month-to-date attempt ranking.
type RankingEntry struct {
	TgID      int64  `json:"tg_id"`
	AgentName string `json:"agent_name"`
	Total     int    `json:"total"`
}

// LeaderboardEntry is one row of the day top/bottom leaderboard.
type LeaderboardEntry struct {
	AgentName string `json:"agent_name"`
	Total     int    `json:"total"`
}

// PenetrationSummary reports the fraction of meetings in a period that
// produced a linked cross-sale attempt, with target completion and the
// delta against the previous period. DeltaPoints is nil when the agent
// did not yet exist for the full previous period.
type PenetrationSummary struct {
	Period         string  `json:"period"`
	Pct            float64 `json:"penetration_pct"`
	PrevPct        float64 `json:"prev_penetration_pct"`
	TargetPct      float64 `json:"target_pct"`
	CompletionPct  int     `json:"completion_pct"`
	DeltaPoints    *int    `json:"delta_points,omitempty"`
	Meetings       int     `json:"meetings"`
	LinkedAttempts int     `json:"linked_attempts"`
}
