package domain

// Sort keys for job search results. Ties always break by creation time
// descending.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortBudgetHigh = "budget_high"
	SortBudgetLow  = "budget_low"
	SortDeadline   = "deadline"
)

func IsValidSortKey(key string) bool {
	switch key {
	case SortNewest, SortOldest, SortBudgetHigh, SortBudgetLow, SortDeadline:
		return true
	}
	return false
}

// JobSearchQuery is the structured filter for the public job listing. All
// fields are optional; supplied filters are ANDed together over public
// published jobs.
type JobSearchQuery struct {
	Keyword         string   // case-insensitive substring over title OR description
	CategoryID      *int64   // exact match
	SkillSlugs      []string // job skill set must contain ALL of these
	BudgetMin       *float64 // range-min >= filter OR fixed >= filter
	BudgetMax       *float64 // range-max <= filter OR fixed <= filter
	RemoteOnly      bool
	ExperienceLevel string // exact match
	Sort            string // one of the Sort* keys, default SortNewest
}
