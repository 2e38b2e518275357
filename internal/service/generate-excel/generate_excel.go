// Package generate_excel renders the day-view Gantt chart of one production
// date into an xlsx sheet: info columns on the left, one grid column per
// time unit on the right, bars filled the same way the dashboard draws them.
package generate_excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"production-schedule/internal/schedule"
	"production-schedule/internal/storage"
)

type ScheduleSource interface {
	WorkPlansByDate(ctx context.Context, date string) ([]*storage.WorkPlan, error)
}

type GenerateExcelService struct {
	source ScheduleSource
	axis   schedule.Axis
}

func NewGenerateService(source ScheduleSource) *GenerateExcelService {
	return &GenerateExcelService{source: source, axis: schedule.Production}
}

const (
	sheetName = "ตารางการผลิต"

	// Left-hand info columns before the time grid starts.
	infoColumns = 5
)

var infoHeaders = []string{"รหัสงาน", "ชื่องาน", "เวลา", "ห้องผลิต", "ผู้รับผิดชอบ"}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, date string) ([]byte, error) {
	plans, err := g.source.WorkPlansByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch work plans: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// Header: info columns, then one label per hour merged across its units.
	for i, name := range infoHeaders {
		f.SetCellValue(sheetName, cellName(i+1, 1), name)
	}

	unitsPerHour := 60 / g.axis.UnitMinutes
	for hour := g.axis.StartMinutes / 60; hour < g.axis.EndMinutes/60; hour++ {
		startCol := infoColumns + g.axis.ColumnOf(hour*60)
		from := cellName(startCol, 1)
		to := cellName(startCol+unitsPerHour-1, 1)
		f.MergeCell(sheetName, from, to)
		f.SetCellValue(sheetName, from, fmt.Sprintf("%02d:00", hour))
	}

	lastHeaderCol := infoColumns + g.axis.TotalColumns()
	f.SetCellStyle(sheetName, "A1", cellName(lastHeaderCol, 1), headerStyle)

	fills := newFillCache(f)

	for rowIdx, plan := range plans {
		rowNum := rowIdx + 2

		f.SetCellValue(sheetName, cellName(1, rowNum), plan.JobCode)
		f.SetCellValue(sheetName, cellName(2, rowNum), plan.JobName)
		f.SetCellValue(sheetName, cellName(3, rowNum), timeWindow(plan))
		f.SetCellValue(sheetName, cellName(4, rowNum), plan.Location)
		f.SetCellValue(sheetName, cellName(5, rowNum), assigneeNames(plan.Assignees))

		g.fillPlanBar(f, fills, plan, rowIdx, rowNum)
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      infoColumns,
		YSplit:      1,
		TopLeftCell: cellName(infoColumns+1, 2),
	})

	f.SetColWidth(sheetName, "A", "E", 18)
	gridStart, _ := excelize.ColumnNumberToName(infoColumns + 1)
	gridEnd, _ := excelize.ColumnNumberToName(lastHeaderCol)
	f.SetColWidth(sheetName, gridStart, gridEnd, 1.2)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fillPlanBar paints one plan's bar the way the dashboard does: warning
// plans get a flat gray bar with the issue list, plans with a step
// breakdown get one segment per step, the rest a solid palette bar.
func (g *GenerateExcelService) fillPlanBar(f *excelize.File, fills *fillCache, plan *storage.WorkPlan, rowIdx, rowNum int) {
	planColor := schedule.PlanColor(rowIdx)
	status := schedule.StatusOf(plan, planColor)
	span := g.axis.PlanSpan(plan.StartTime, plan.EndTime)

	if status.Type == schedule.StatusWarning {
		g.fillSpan(f, fills, rowNum, span, schedule.WarningFill)
		f.SetCellValue(sheetName, cellName(infoColumns+span.Start, rowNum), status.Message)
		return
	}

	if !plan.HasSteps {
		g.fillSpan(f, fills, rowNum, span, planColor)
		return
	}

	durations := make([]int, len(plan.Steps))
	for i, step := range plan.Steps {
		durations[i] = step.EstimatedDurationMinutes
	}

	for i, stepSpan := range g.axis.StepSpans(span.Start, durations) {
		color := schedule.StepFill(plan.Steps[i].ProcessDescription, planColor)
		g.fillSpan(f, fills, rowNum, stepSpan, color)
	}
}

func (g *GenerateExcelService) fillSpan(f *excelize.File, fills *fillCache, rowNum int, span schedule.Span, color string) {
	if span.Columns() < 1 {
		return
	}
	from := cellName(infoColumns+span.Start, rowNum)
	to := cellName(infoColumns+span.End-1, rowNum)
	f.SetCellStyle(sheetName, from, to, fills.style(color))
}

// fillCache de-duplicates excelize styles per fill color.
type fillCache struct {
	f      *excelize.File
	styles map[string]int
}

func newFillCache(f *excelize.File) *fillCache {
	return &fillCache{f: f, styles: make(map[string]int)}
}

func (c *fillCache) style(color string) int {
	if id, ok := c.styles[color]; ok {
		return id
	}
	id, _ := c.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	c.styles[color] = id
	return id
}

func timeWindow(plan *storage.WorkPlan) string {
	start := "-"
	if plan.StartTime != nil {
		start = *plan.StartTime
	}
	end := "-"
	if plan.EndTime != nil {
		end = *plan.EndTime
	}
	return start + " - " + end
}

func assigneeNames(assignees []storage.Assignee) string {
	names := make([]string, len(assignees))
	for i, assignee := range assignees {
		names[i] = assignee.Name
	}
	return strings.Join(names, ", ")
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
