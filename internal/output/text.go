package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gitlytics/gitlytics-go/internal/stats"
)

const rule = "=================================================="

// TextFormatter renders the human-readable report with a fixed section
// order: summary, pull requests, commit stats, lines of code, temporal.
type TextFormatter struct{}

func (f *TextFormatter) Format(report *stats.Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("Git Analytics Report\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "User: %s\n", report.User)
	fmt.Fprintf(&b, "Repository: %s\n", report.Repository)
	fmt.Fprintf(&b, "Generated: %s\n", report.Generated.Format("2006-01-02 15:04:05"))
	if report.DateFilter != nil {
		var bounds []string
		if report.DateFilter.StartDate != "" {
			bounds = append(bounds, "from "+report.DateFilter.StartDate)
		}
		if report.DateFilter.EndDate != "" {
			bounds = append(bounds, "until "+report.DateFilter.EndDate)
		}
		fmt.Fprintf(&b, "Date Range: %s\n", strings.Join(bounds, " "))
	}
	b.WriteString("\n")

	b.WriteString("Quick Stats:\n")
	fmt.Fprintf(&b, "  Total Commits: %d\n", report.Commits.TotalCommits)
	fmt.Fprintf(&b, "  Unique Commits: %d\n", report.Commits.UniqueCommits)
	fmt.Fprintf(&b, "  Recent Activity (30 days): %d\n", report.Commits.RecentCommits)
	fmt.Fprintf(&b, "  Activity Score: %d\n", report.ActivityScore)
	b.WriteString("\n")

	b.WriteString("Pull Requests:\n")
	if report.PullRequests.Count.Known {
		fmt.Fprintf(&b, "  Count: %d\n", report.PullRequests.Count.Value)
	} else {
		b.WriteString("  Count: unknown\n")
	}
	fmt.Fprintf(&b, "  Source: %s\n", report.PullRequests.Source)
	b.WriteString("\n")

	if len(report.Commits.CommitsByBranch) > 0 {
		b.WriteString("Commits by Branch:\n")
		for _, entry := range sortedByCount(report.Commits.CommitsByBranch) {
			fmt.Fprintf(&b, "  %s: %d commits\n", entry.key, entry.count)
		}
		b.WriteString("\n")
	}

	b.WriteString("Lines of Code:\n")
	fmt.Fprintf(&b, "  Files Modified: %d\n", report.Lines.FilesModified)
	fmt.Fprintf(&b, "  Total LOC: %d\n", report.Lines.TotalLOC)
	fmt.Fprintf(&b, "  Lines Added: %d\n", report.Lines.LinesAdded)
	fmt.Fprintf(&b, "  Lines Deleted: %d\n", report.Lines.LinesDeleted)
	fmt.Fprintf(&b, "  Net Lines: %d\n", report.Lines.NetLines)
	b.WriteString("\n")

	if len(report.Lines.FilesByExtension) > 0 {
		b.WriteString("Top File Extensions:\n")
		ext := sortedByCount(report.Lines.FilesByExtension)
		if len(ext) > 5 {
			ext = ext[:5]
		}
		for _, entry := range ext {
			fmt.Fprintf(&b, "  %s: %d lines\n", entry.key, entry.count)
		}
		b.WriteString("\n")
	}

	if len(report.Lines.LargestFiles) > 0 {
		b.WriteString("Largest Files:\n")
		for _, fs := range report.Lines.LargestFiles {
			fmt.Fprintf(&b, "  %s: %d lines\n", fs.Path, fs.Lines)
		}
		b.WriteString("\n")
	}

	if report.Commits.FirstCommit != "" && report.Commits.LastCommit != "" {
		b.WriteString("Timeline:\n")
		fmt.Fprintf(&b, "  First Commit: %s\n", report.Commits.FirstCommit)
		fmt.Fprintf(&b, "  Last Commit: %s\n", report.Commits.LastCommit)
		if report.Commits.DaysActive != nil {
			fmt.Fprintf(&b, "  Days Active: %d\n", *report.Commits.DaysActive)
		}
		b.WriteString("\n")
	}

	if len(report.Commits.CommitsByYear) > 0 {
		b.WriteString("Commits by Year:\n")
		for _, key := range sortedKeys(report.Commits.CommitsByYear) {
			fmt.Fprintf(&b, "  %s: %d commits\n", key, report.Commits.CommitsByYear[key])
		}
		b.WriteString("\n")
	}

	if len(report.Commits.CommitsByMonth) > 0 {
		b.WriteString("Commits by Month:\n")
		for _, key := range sortedKeys(report.Commits.CommitsByMonth) {
			fmt.Fprintf(&b, "  %s: %d commits\n", key, report.Commits.CommitsByMonth[key])
		}
		b.WriteString("\n")
	}

	if report.Commits.MostActiveDay != "" {
		b.WriteString("Most Active Day:\n")
		fmt.Fprintf(&b, "  %s: %d commits\n", report.Commits.MostActiveDay,
			report.Commits.CommitsByDay[report.Commits.MostActiveDay])
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("Report Complete\n")
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type countEntry struct {
	key   string
	count int
}

// sortedByCount orders entries by descending count, name ascending on ties
func sortedByCount(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, countEntry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
