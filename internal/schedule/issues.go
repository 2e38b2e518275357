package schedule

import (
	"strings"

	"production-schedule/internal/storage"
)

type StatusType string

const (
	StatusNormal  StatusType = "normal"
	StatusWarning StatusType = "warning"
)

// PlanStatus is the defensive display classification of one plan: plans with
// required display fields missing render as a flat gray bar with the issue
// list as tooltip, instead of the misleading full-day bar.
type PlanStatus struct {
	Type    StatusType `json:"type"`
	Color   string     `json:"color"`
	Issues  []string   `json:"issues"`
	Message string     `json:"message"`
}

// PlanIssues lists the missing required display fields, one Thai message
// per field. This is a presentation check, not a data-entry gate.
func PlanIssues(plan *storage.WorkPlan) []string {
	var issues []string

	if plan.StartTime == nil || *plan.StartTime == "" {
		issues = append(issues, "ไม่มีเวลาเริ่มต้น")
	}
	if plan.EndTime == nil || *plan.EndTime == "" {
		issues = append(issues, "ไม่มีเวลาสิ้นสุด")
	}
	if len(plan.Assignees) == 0 {
		issues = append(issues, "ไม่มีผู้รับผิดชอบ")
	}
	if plan.Location == "" || plan.Location == storage.NoRoomName {
		issues = append(issues, "ไม่ได้ระบุสถานที่")
	}
	if plan.Status == "" || plan.Status == storage.NoStatusName {
		issues = append(issues, "ไม่มีสถานะงาน")
	}

	return issues
}

// StatusOf classifies a plan as normal or warning. Any single missing field
// flags the plan.
func StatusOf(plan *storage.WorkPlan, planColor string) PlanStatus {
	issues := PlanIssues(plan)

	if len(issues) == 0 {
		return PlanStatus{
			Type:   StatusNormal,
			Color:  planColor,
			Issues: []string{},
		}
	}

	return PlanStatus{
		Type:    StatusWarning,
		Color:   WarningFill,
		Issues:  issues,
		Message: strings.Join(issues, ", "),
	}
}
