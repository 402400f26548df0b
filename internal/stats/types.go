package stats

import (
	"encoding/json"
	"time"
)

// PRCount is a pull-request count that may be indeterminate. An unknown
// count serializes as the string "unknown"; a known count, including an
// explicit zero, serializes as a number.
type PRCount struct {
	Value int
	Known bool
}

// KnownCount returns a definite count
func KnownCount(n int) PRCount {
	return PRCount{Value: n, Known: true}
}

// UnknownCount returns the indeterminate sentinel
func UnknownCount() PRCount {
	return PRCount{}
}

func (c PRCount) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return json.Marshal("unknown")
	}
	return json.Marshal(c.Value)
}

func (c *PRCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = PRCount{Value: n, Known: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = PRCount{}
	return nil
}

// CommitStats holds the commit-count section of a report
type CommitStats struct {
	TotalCommits    int            `json:"total_commits"`
	UniqueCommits   int            `json:"unique_commits"`
	RecentCommits   int            `json:"recent_commits"`
	FirstCommit     string         `json:"first_commit,omitempty"`
	LastCommit      string         `json:"last_commit,omitempty"`
	DaysActive      *int           `json:"days_active,omitempty"`
	MostActiveDay   string         `json:"most_active_day,omitempty"`
	CommitsByBranch map[string]int `json:"commits_by_branch"`
	CommitsByYear   map[string]int `json:"commits_by_year"`
	CommitsByDay    map[string]int `json:"commits_by_day"`
	CommitsByMonth  map[string]int `json:"commits_by_month"`
}

// FileSize pairs a touched path with its present-day line count
type FileSize struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
}

// LineStats holds the lines-of-code section of a report. TotalLOC counts
// the current contents of touched files that still exist, not a historical
// snapshot.
type LineStats struct {
	FilesModified    int            `json:"files_modified"`
	TotalLOC         int            `json:"total_loc"`
	LinesAdded       int            `json:"lines_added"`
	LinesDeleted     int            `json:"lines_deleted"`
	NetLines         int            `json:"net_lines"`
	FilesByExtension map[string]int `json:"files_by_extension"`
	LargestFiles     []FileSize     `json:"largest_files"`
}

// PullRequestStats holds the resolved PR count and which source produced it
type PullRequestStats struct {
	Count  PRCount `json:"pull_requests"`
	Source string  `json:"source"`
}

// DateFilter records the active report window
type DateFilter struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Report is the full aggregate for one author. Built once per run and
// immutable after construction; both renderers consume the same instance.
type Report struct {
	User          string           `json:"user"`
	Repository    string           `json:"repository"`
	Generated     time.Time        `json:"generated"`
	DateFilter    *DateFilter      `json:"date_filter,omitempty"`
	ActivityScore int              `json:"activity_score"`
	Commits       CommitStats      `json:"commit_stats"`
	Lines         LineStats        `json:"lines_of_code"`
	PullRequests  PullRequestStats `json:"pull_requests"`
}
