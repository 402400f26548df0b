package git

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestParseNumstat(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		expectAdded   int
		expectDeleted int
	}{
		{
			name:          "empty output",
			output:        "",
			expectAdded:   0,
			expectDeleted: 0,
		},
		{
			name:          "single file",
			output:        "10\t2\tmain.go",
			expectAdded:   10,
			expectDeleted: 2,
		},
		{
			name:          "multiple files across commits",
			output:        "10\t2\tmain.go\n5\t0\tutil.go\n0\t3\tREADME.md",
			expectAdded:   15,
			expectDeleted: 5,
		},
		{
			name:          "binary file dashes count as zero",
			output:        "-\t-\tlogo.png\n7\t1\tmain.go",
			expectAdded:   7,
			expectDeleted: 1,
		},
		{
			name:          "malformed line skipped",
			output:        "garbage\n3\t4\ta.go",
			expectAdded:   3,
			expectDeleted: 4,
		},
		{
			name:          "non-numeric column clamped to zero",
			output:        "x\t4\ta.go",
			expectAdded:   0,
			expectDeleted: 4,
		},
		{
			name:          "blank lines ignored",
			output:        "\n1\t1\ta.go\n\n",
			expectAdded:   1,
			expectDeleted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, deleted := parseNumstat(tt.output)
			if added != tt.expectAdded {
				t.Errorf("added = %d, want %d", added, tt.expectAdded)
			}
			if deleted != tt.expectDeleted {
				t.Errorf("deleted = %d, want %d", deleted, tt.expectDeleted)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name   string
		output string
		expect int
	}{
		{"empty", "", 0},
		{"one line", "abc123 fix bug", 1},
		{"three lines", "a one\nb two\nc three", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines(tt.output); got != tt.expect {
				t.Errorf("countLines = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestQueryDateArgs(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name   string
		query  Query
		expect []string
	}{
		{
			name:   "unbounded",
			query:  Query{Author: "alice"},
			expect: nil,
		},
		{
			name:   "since only",
			query:  Query{Author: "alice", Since: date("2024-01-10")},
			expect: []string{"--since", "2024-01-10"},
		},
		{
			name:   "until only",
			query:  Query{Author: "alice", Until: date("2024-01-20")},
			expect: []string{"--until", "2024-01-20"},
		},
		{
			name:   "both bounds",
			query:  Query{Author: "alice", Since: date("2024-01-10"), Until: date("2024-01-20")},
			expect: []string{"--since", "2024-01-10", "--until", "2024-01-20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.dateArgs()
			if len(got) != len(tt.expect) {
				t.Fatalf("dateArgs = %v, want %v", got, tt.expect)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("dateArgs[%d] = %q, want %q", i, got[i], tt.expect[i])
				}
			}
			if tt.query.Bounded() != (len(tt.expect) > 0) {
				t.Errorf("Bounded = %v inconsistent with args %v", tt.query.Bounded(), tt.expect)
			}
		})
	}
}

// gitRun executes git in a test repository with a fixed author identity
// and, when given, a fixed author/committer date.
func gitRun(t *testing.T, dir, date string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Alice",
		"GIT_AUTHOR_EMAIL=alice@example.com",
		"GIT_COMMITTER_NAME=Alice",
		"GIT_COMMITTER_EMAIL=alice@example.com",
	)
	if date != "" {
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestHasCommits(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	gitRun(t, dir, "", "init", "-q")
	history := NewHistory(dir)
	ctx := context.Background()

	t.Run("empty repository has no commits", func(t *testing.T) {
		exists, err := history.HasCommits(ctx, Query{Author: "Alice"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("empty repository must report no commits")
		}
	})

	gitRun(t, dir, "2024-01-01T10:00:00+00:00", "commit", "--allow-empty", "-q", "-m", "one")
	gitRun(t, dir, "2024-01-15T10:00:00+00:00", "commit", "--allow-empty", "-q", "-m", "two")
	gitRun(t, dir, "2024-02-01T10:00:00+00:00", "commit", "--allow-empty", "-q", "-m", "three")

	t.Run("author with commits", func(t *testing.T) {
		exists, err := history.HasCommits(ctx, Query{Author: "Alice"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected commits for Alice")
		}
	})

	t.Run("unknown author", func(t *testing.T) {
		exists, err := history.HasCommits(ctx, Query{Author: "Bob"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("Bob has no commits")
		}
	})

	t.Run("window excluding all commits", func(t *testing.T) {
		q := Query{Author: "Alice", Since: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
		exists, err := history.HasCommits(ctx, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("no commits fall after 2030")
		}
	})

	t.Run("bounded count", func(t *testing.T) {
		q := Query{
			Author: "Alice",
			Since:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Until:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		}
		count, err := history.CountCommits(ctx, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1 (only the 2024-01-15 commit)", count)
		}
	})

	t.Run("dates newest first", func(t *testing.T) {
		dates, err := history.CommitDates(ctx, Query{Author: "Alice"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"2024-02-01", "2024-01-15", "2024-01-01"}
		if len(dates) != len(want) {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
		for i := range want {
			if dates[i] != want[i] {
				t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
			}
		}
	})
}

func TestCommitTimeLayout(t *testing.T) {
	// git %aD does not zero-pad the day of month
	tests := []struct {
		line    string
		weekday time.Weekday
		ok      bool
	}{
		{"Mon, 1 Jan 2024 10:00:00 +0000", time.Monday, true},
		{"Thu, 7 Apr 2005 22:13:13 +0200", time.Thursday, true},
		{"Fri, 15 Mar 2024 08:30:00 -0500", time.Friday, true},
		{"not a date", time.Sunday, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			parsed, err := time.Parse("Mon, 2 Jan 2006 15:04:05 -0700", tt.line)
			if tt.ok != (err == nil) {
				t.Fatalf("parse err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && parsed.Weekday() != tt.weekday {
				t.Errorf("weekday = %v, want %v", parsed.Weekday(), tt.weekday)
			}
		})
	}
}
