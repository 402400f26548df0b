package stats

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gitlytics/gitlytics-go/internal/git"
)

// Reader is the slice of history queries the aggregator consumes. The
// *git.History type satisfies it; tests substitute fakes.
type Reader interface {
	CountCommits(ctx context.Context, q git.Query) (int, error)
	UniqueCommits(ctx context.Context, q git.Query) (int, error)
	RecentCommits(ctx context.Context, q git.Query) (int, error)
	RemoteBranches(ctx context.Context) ([]string, error)
	CountCommitsOnBranch(ctx context.Context, branch string, q git.Query) (int, error)
	ChangedFiles(ctx context.Context, q git.Query) ([]string, error)
	DiffTotals(ctx context.Context, q git.Query) (added, deleted int, err error)
	CommitDates(ctx context.Context, q git.Query) ([]string, error)
	CommitTimes(ctx context.Context, q git.Query) ([]time.Time, error)
}

// Aggregate computes the full contribution report for one author from
// history queries. PullRequests is left zero-valued; the caller fills it
// from the forge chain. repoRoot anchors current-LOC file reads.
func Aggregate(ctx context.Context, reader Reader, repoRoot string, q git.Query) (*Report, error) {
	report := &Report{
		User:       q.Author,
		Repository: filepath.Base(repoRoot),
		Generated:  time.Now(),
	}
	if q.Bounded() {
		report.DateFilter = &DateFilter{}
		if !q.Since.IsZero() {
			report.DateFilter.StartDate = q.Since.Format("2006-01-02")
		}
		if !q.Until.IsZero() {
			report.DateFilter.EndDate = q.Until.Format("2006-01-02")
		}
	}

	commits, err := commitStats(ctx, reader, q)
	if err != nil {
		return nil, err
	}
	report.Commits = *commits

	lines, err := lineStats(ctx, reader, repoRoot, q)
	if err != nil {
		return nil, err
	}
	report.Lines = *lines

	report.ActivityScore = ActivityScore(commits.TotalCommits, commits.RecentCommits)
	return report, nil
}

// ActivityScore is the weighted engagement metric: every commit counts 10,
// every commit in the trailing 30 days counts a further 50.
func ActivityScore(totalCommits, recentCommits int) int {
	return totalCommits*10 + recentCommits*50
}

func commitStats(ctx context.Context, reader Reader, q git.Query) (*CommitStats, error) {
	stats := &CommitStats{
		CommitsByBranch: map[string]int{},
		CommitsByYear:   map[string]int{},
		CommitsByDay:    map[string]int{},
		CommitsByMonth:  map[string]int{},
	}

	var err error
	if stats.TotalCommits, err = reader.CountCommits(ctx, q); err != nil {
		return nil, err
	}
	if stats.UniqueCommits, err = reader.UniqueCommits(ctx, q); err != nil {
		return nil, err
	}
	if stats.RecentCommits, err = reader.RecentCommits(ctx, q); err != nil {
		return nil, err
	}

	dates, err := reader.CommitDates(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(dates) > 0 {
		// git log lists newest first
		stats.LastCommit = dates[0]
		stats.FirstCommit = dates[len(dates)-1]
		stats.DaysActive = daysActive(stats.FirstCommit, stats.LastCommit, dates)
	}
	for _, d := range dates {
		year, month, ok := splitDate(d)
		if !ok {
			continue
		}
		stats.CommitsByYear[year]++
		stats.CommitsByMonth[month]++
	}

	times, err := reader.CommitTimes(ctx, q)
	if err != nil {
		return nil, err
	}
	var dayOrder []string
	for _, t := range times {
		day := t.Weekday().String()
		if stats.CommitsByDay[day] == 0 {
			dayOrder = append(dayOrder, day)
		}
		stats.CommitsByDay[day]++
	}
	stats.MostActiveDay = mostActive(stats.CommitsByDay, dayOrder)

	branches, err := reader.RemoteBranches(ctx)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		count, err := reader.CountCommitsOnBranch(ctx, branch, q)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			stats.CommitsByBranch[strings.TrimPrefix(branch, "origin/")] = count
		}
	}

	return stats, nil
}

func lineStats(ctx context.Context, reader Reader, repoRoot string, q git.Query) (*LineStats, error) {
	stats := &LineStats{FilesByExtension: map[string]int{}}

	files, err := reader.ChangedFiles(ctx, q)
	if err != nil {
		return nil, err
	}
	stats.FilesModified = len(files)

	var sizes []FileSize
	for _, path := range files {
		lines, ok := currentLineCount(filepath.Join(repoRoot, path))
		if !ok {
			// Touched but since deleted; contributes nothing to current LOC
			continue
		}
		stats.TotalLOC += lines
		stats.FilesByExtension[filepath.Ext(path)] += lines
		sizes = append(sizes, FileSize{Path: path, Lines: lines})
	}
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].Lines > sizes[j].Lines })
	if len(sizes) > 10 {
		sizes = sizes[:10]
	}
	stats.LargestFiles = sizes

	added, deleted, err := reader.DiffTotals(ctx, q)
	if err != nil {
		return nil, err
	}
	stats.LinesAdded = added
	stats.LinesDeleted = deleted
	stats.NetLines = added - deleted

	return stats, nil
}

// currentLineCount reads a file's present content and counts its lines.
// Missing or unreadable files report ok=false.
func currentLineCount(path string) (int, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		count++
	}
	if scanner.Err() != nil {
		return 0, false
	}
	return count, true
}

// daysActive spans first to last commit date. Absent when fewer than two
// distinct dates exist.
func daysActive(first, last string, dates []string) *int {
	distinct := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		distinct[d] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil
	}
	start, err1 := time.Parse("2006-01-02", first)
	end, err2 := time.Parse("2006-01-02", last)
	if err1 != nil || err2 != nil {
		return nil
	}
	days := int(end.Sub(start).Hours() / 24)
	return &days
}

// splitDate breaks a YYYY-MM-DD date into year and year-month keys
func splitDate(d string) (year, month string, ok bool) {
	parts := strings.SplitN(d, "-", 3)
	if len(parts) < 2 || parts[0] == "" || parts[0] == "0000" {
		return "", "", false
	}
	return parts[0], parts[0] + "-" + parts[1], true
}

// mostActive picks the mode of the weekday counts. Ties break toward the
// day first encountered in the log, which is implementation-defined and
// matches the order commits were read.
func mostActive(counts map[string]int, order []string) string {
	best := ""
	bestCount := 0
	for _, day := range order {
		if counts[day] > bestCount {
			best = day
			bestCount = counts[day]
		}
	}
	return best
}
