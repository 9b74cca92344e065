package usage

import "time"

// Window is a trailing look-back interval length in days.
type Window int

const (
	Window1Day   Window = 1
	Window7Days  Window = 7
	Window30Days Window = 30
)

// Days returns the window length in days.
func (w Window) Days() int { return int(w) }

// CutoffBefore returns the exclusive lower bound of the window ending at
// ref: sessions qualify when start_time is in (ref - w days, ref].
func (w Window) CutoffBefore(ref time.Time) time.Time {
	return ref.AddDate(0, 0, -w.Days())
}

// WindowSummary aggregates all sessions of one user inside one window.
// A window with no sessions is a valid all-zero summary, not an error.
type WindowSummary struct {
	UploadKB   float64
	DownloadKB float64
	TotalKB    float64
	Sessions   int64
}

// Breakdown holds the three overlapping window summaries for one user
// relative to a single reference timestamp. The windows nest: every
// session counted in OneDay is also counted in SevenDays and ThirtyDays.
type Breakdown struct {
	OneDay     WindowSummary
	SevenDays  WindowSummary
	ThirtyDays WindowSummary
}

// RankedTotal is one leaderboard ranking entry: a username and its summed
// 30-day total volume. Full window detail is resolved separately, only
// for the page being returned.
type RankedTotal struct {
	Username string
	TotalKB  float64
}
