package scrape

import (
	"strconv"
	"strings"
	"time"
)

// DateResolver turns the date strings sites render ("21 hours ago", "today",
// "21.07.2020") into epoch millis. Layout is the Go reference layout for the
// site's absolute format. Now is injectable for tests and defaults to
// time.Now.
type DateResolver struct {
	Layout string
	Now    func() time.Time
}

// relativeUnits maps a unit token, trailing pluralization stripped, to its
// duration. English and Spanish forms per the sites this ships with.
var relativeUnits = map[string]time.Duration{
	"day":     24 * time.Hour,
	"día":     24 * time.Hour,
	"hour":    time.Hour,
	"hora":    time.Hour,
	"minute":  time.Minute,
	"min":     time.Minute,
	"second":  time.Second,
	"segundo": time.Second,
}

// Resolve resolves a raw date string to epoch millis. Resolution order:
// relative "<n> <unit> ago", yesterday, today, then the absolute layout.
// Anything unparseable yields 0; date failures never abort a chapter fetch.
func (r DateResolver) Resolve(raw string) int64 {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	lc := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasSuffix(lc, " ago") {
		if ts, ok := resolveRelative(lc, now); ok {
			return ts
		}
	}

	switch {
	case strings.HasPrefix(lc, "yesterday"), strings.HasPrefix(lc, "ayer"):
		return midnight(now.AddDate(0, 0, -1))
	case strings.HasPrefix(lc, "today"):
		return midnight(now)
	}

	if r.Layout != "" {
		if t, err := time.Parse(r.Layout, strings.TrimSpace(raw)); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// resolveRelative handles dates of the form "21 horas ago". An unrecognized
// unit fails this branch only; the caller falls through to the next rule.
func resolveRelative(date string, now time.Time) (int64, bool) {
	parts := strings.Split(date, " ")
	if len(parts) < 3 || parts[2] != "ago" {
		return 0, false
	}
	amount, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	unit, ok := relativeUnits[strings.TrimSuffix(parts[1], "s")]
	if !ok {
		return 0, false
	}
	return now.Add(-time.Duration(amount) * unit).UnixMilli(), true
}

func midnight(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).UnixMilli()
}
