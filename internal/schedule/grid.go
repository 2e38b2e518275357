// Package schedule holds the day-view layout model shared by the Excel
// report and the dashboard: the time-grid column math, the process-step
// category keywords and the missing-field checks.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Axis is a fixed day axis split into equal time units. Column 1 starts at
// StartMinutes; the last column ends at EndMinutes.
type Axis struct {
	StartMinutes int
	EndMinutes   int
	UnitMinutes  int
}

// Production is the 5-minute grid of the main view, Demo the 30-minute grid
// of the demo view. The two granularities are separate configurations, not
// interchangeable.
var (
	Production = Axis{StartMinutes: 8 * 60, EndMinutes: 17 * 60, UnitMinutes: 5}
	Demo       = Axis{StartMinutes: 8 * 60, EndMinutes: 17 * 60, UnitMinutes: 30}
)

// Span is a half-open column range [Start, End) on the axis grid.
type Span struct {
	Start int
	End   int
}

func (s Span) Columns() int {
	return s.End - s.Start
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", t)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", t)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", t)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time out of range %q", t)
	}

	return hours*60 + minutes, nil
}

// TotalColumns is the number of grid columns on the axis.
func (a Axis) TotalColumns() int {
	return (a.EndMinutes - a.StartMinutes) / a.UnitMinutes
}

// ColumnOf maps minutes-from-midnight to a 1-based grid column.
func (a Axis) ColumnOf(minutes int) int {
	return (minutes-a.StartMinutes)/a.UnitMinutes + 1
}

// PlanSpan maps a plan's clock window to grid columns. The end column rounds
// up so a bar always covers at least one full unit and end-aligns to the
// unit boundary. A missing start defaults to the axis start, a missing end
// to the axis end, which yields the full-width bar of the base view.
func (a Axis) PlanSpan(startTime, endTime *string) Span {
	startMinutes := a.StartMinutes
	if startTime != nil {
		if m, err := ParseClock(*startTime); err == nil {
			startMinutes = m
		}
	}

	endMinutes := a.EndMinutes
	if endTime != nil {
		if m, err := ParseClock(*endTime); err == nil {
			endMinutes = m
		}
	}

	start := a.ColumnOf(startMinutes)
	end := ceilDiv(endMinutes-a.StartMinutes, a.UnitMinutes) + 1

	return Span{Start: start, End: end}
}

// StepSpans lays step durations out left to right from the plan's start
// column, each step at least one column wide, the whole run clipped at the
// axis's final column. Steps that would begin past the end come back empty
// rather than reflowed.
func (a Axis) StepSpans(planStart int, durations []int) []Span {
	lastColumn := a.TotalColumns() + 1

	spans := make([]Span, 0, len(durations))
	column := planStart
	for _, duration := range durations {
		width := ceilDiv(duration, a.UnitMinutes)
		if width < 1 {
			width = 1
		}

		start := column
		end := column + width
		if end > lastColumn {
			end = lastColumn
		}
		if start > lastColumn {
			start = lastColumn
		}

		spans = append(spans, Span{Start: start, End: end})
		column += width
	}

	return spans
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
