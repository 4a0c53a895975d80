package domain

// DayBucket aggregates completed/missed counters for one calendar day.
// Counts only grow within a day; the whole history can be cleared at once.
type DayBucket struct {
	Completed int `json:"completed"`
	Missed    int `json:"missed"`
}

// DayStats is a DayBucket tagged with its YYYY-MM-DD day key, used for
// chronological API responses.
type DayStats struct {
	Date string `json:"date"`
	DayBucket
}
