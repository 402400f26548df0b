package git

import "time"

// Query scopes every history call to one author and an optional date window.
// Bounds are calendar dates; a zero time means unbounded on that side.
// Passing bounds as discrete argv entries avoids any shell-style string
// assembly of filters.
type Query struct {
	Author string
	Since  time.Time
	Until  time.Time
}

// Bounded reports whether any date bound is set
func (q Query) Bounded() bool {
	return !q.Since.IsZero() || !q.Until.IsZero()
}

// dateArgs returns the --since/--until arguments for this query's window
func (q Query) dateArgs() []string {
	var args []string
	if !q.Since.IsZero() {
		args = append(args, "--since", q.Since.Format("2006-01-02"))
	}
	if !q.Until.IsZero() {
		args = append(args, "--until", q.Until.Format("2006-01-02"))
	}
	return args
}
