package schedule

import (
	"math"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// avgMonthDays keeps the month view visually uniform; it is an
// approximation, not calendar-exact.
const avgMonthDays = 30.44

// Timeline converts calendar dates to horizontal offsets for a given
// view granularity. CellWidth is the pixel width of one day, week or
// month column depending on Mode.
type Timeline struct {
	Start     time.Time
	End       time.Time
	Mode      domain.ViewMode
	CellWidth float64
}

// Bar is a horizontal extent on the timeline. Bars fully outside the
// visible window are flagged invisible rather than clipped.
type Bar struct {
	X       float64
	Width   float64
	Visible bool
}

func (tl Timeline) cellDays() float64 {
	switch tl.Mode {
	case domain.ViewWeek:
		return 7
	case domain.ViewMonth:
		return avgMonthDays
	default:
		return 1
	}
}

// PixelsPerDay returns the horizontal scale of the current view.
func (tl Timeline) PixelsPerDay() float64 {
	return tl.CellWidth / tl.cellDays()
}

// TotalDays returns the inclusive length of the window in days.
func (tl Timeline) TotalDays() int {
	d := domain.DaysBetween(tl.Start, tl.End) + 1
	if d < 1 {
		return 1
	}
	return d
}

// TotalWidth returns the pixel width of the full window.
func (tl Timeline) TotalWidth() float64 {
	return float64(tl.TotalDays()) * tl.PixelsPerDay()
}

// OffsetPx returns the horizontal offset of a date from the window start.
func (tl Timeline) OffsetPx(date time.Time) float64 {
	return float64(domain.DaysBetween(tl.Start, date)) * tl.PixelsPerDay()
}

// BarFor maps an inclusive date range onto the timeline.
func (tl Timeline) BarFor(start, end time.Time) Bar {
	x := tl.OffsetPx(start)
	days := domain.DaysBetween(start, end) + 1
	if days < 1 {
		days = 1
	}
	w := float64(days) * tl.PixelsPerDay()
	return Bar{
		X:       x,
		Width:   w,
		Visible: x+w > 0 && x < tl.TotalWidth(),
	}
}

// DaysDelta converts a pointer delta in pixels to whole days, rounding
// to the nearest day so a bar snaps to the grid mid-gesture.
func (tl Timeline) DaysDelta(pixels float64) int {
	ppd := tl.PixelsPerDay()
	if ppd <= 0 {
		return 0
	}
	return int(math.Round(pixels / ppd))
}
