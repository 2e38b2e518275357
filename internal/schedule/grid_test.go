package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseClock(t *testing.T) {
	m, err := ParseClock("08:00")
	assert.NoError(t, err)
	assert.Equal(t, 480, m)

	m, err = ParseClock("16:45")
	assert.NoError(t, err)
	assert.Equal(t, 1005, m)

	_, err = ParseClock("bad")
	assert.Error(t, err)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestPlanSpan_OneHourOnProductionGrid(t *testing.T) {
	span := Production.PlanSpan(strPtr("08:00"), strPtr("09:00"))

	assert.Equal(t, 1, span.Start)
	assert.Equal(t, 13, span.End)
}

func TestPlanSpan_EndRoundsUpToUnitBoundary(t *testing.T) {
	// 08:00-08:02 is shorter than one unit but still covers a full column.
	span := Production.PlanSpan(strPtr("08:00"), strPtr("08:02"))

	assert.Equal(t, 1, span.Start)
	assert.Equal(t, 2, span.End)
	assert.Equal(t, 1, span.Columns())
}

func TestPlanSpan_NonDegenerateWindowCoversAtLeastOneColumn(t *testing.T) {
	windows := [][2]string{
		{"08:00", "08:01"},
		{"09:13", "09:14"},
		{"10:00", "10:05"},
		{"16:55", "17:00"},
	}

	for _, window := range windows {
		span := Production.PlanSpan(strPtr(window[0]), strPtr(window[1]))
		assert.GreaterOrEqual(t, span.Columns(), 1, "window %s-%s", window[0], window[1])
	}
}

func TestPlanSpan_MissingTimesDefaultToFullWidth(t *testing.T) {
	span := Production.PlanSpan(nil, nil)

	assert.Equal(t, 1, span.Start)
	assert.Equal(t, Production.TotalColumns()+1, span.End)
}

func TestPlanSpan_DemoGridUsesThirtyMinuteUnits(t *testing.T) {
	span := Demo.PlanSpan(strPtr("08:00"), strPtr("09:00"))

	assert.Equal(t, 1, span.Start)
	assert.Equal(t, 3, span.End)
	assert.Equal(t, 18, Demo.TotalColumns())
}

func TestTotalColumns(t *testing.T) {
	assert.Equal(t, 108, Production.TotalColumns())
}

func TestStepSpans_ProportionalAndContiguous(t *testing.T) {
	// 30 + 60 + 15 minutes from column 1 on the 5-minute grid.
	spans := Production.StepSpans(1, []int{30, 60, 15})

	assert.Equal(t, []Span{
		{Start: 1, End: 7},
		{Start: 7, End: 19},
		{Start: 19, End: 22},
	}, spans)
}

func TestStepSpans_MinimumOneColumn(t *testing.T) {
	spans := Production.StepSpans(1, []int{2, 3})

	assert.Equal(t, 1, spans[0].Columns())
	assert.Equal(t, 1, spans[1].Columns())
	assert.Equal(t, spans[0].End, spans[1].Start)
}

func TestStepSpans_ClippedAtAxisEnd(t *testing.T) {
	// Start near the end of the day; cumulative duration runs past 17:00.
	lastColumn := Production.TotalColumns() + 1
	spans := Production.StepSpans(lastColumn-2, []int{30, 60})

	assert.Equal(t, lastColumn, spans[0].End)
	// The second step begins past the axis and collapses to nothing.
	assert.Equal(t, 0, spans[1].Columns())
}
