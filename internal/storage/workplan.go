package storage

// WorkPlanRow is one row of the date query before enrichment: lookup names
// are still raw (nil when the outer join found nothing).
type WorkPlanRow struct {
	ID               int
	ProductionDate   string
	JobCode          string
	JobName          string
	StartTime        *string // "HH:MM"
	EndTime          *string // "HH:MM"
	StatusID         *int
	MachineID        *int
	ProductionRoomID *int
	Notes            *string
	IsSpecial        bool
	Location         *string
	Status           *string
	MachineName      *string
}

// OperatorRow joins work_plan_operators to the user directory by id_code.
// UserName is nil when the code has no directory match.
type OperatorRow struct {
	WorkPlanID int
	UserID     *int
	IDCode     string
	Role       string
	UserName   *string
	Position   *string
	Department *string
}

// TemplateRow is one standard-time step of a process template.
type TemplateRow struct {
	ID                       int     `json:"id"`
	ProductCode              string  `json:"product_code"`
	Version                  int     `json:"version"`
	ProcessNumber            int     `json:"process_number"`
	ProcessDescription       string  `json:"process_description"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	StandardWorkerCount      int     `json:"standard_worker_count"`
	RequiredMachineType      *string `json:"required_machine_type"`
	RequiredRoomType         *string `json:"required_room_type"`
	Notes                    *string `json:"notes"`
	IsActive                 bool    `json:"is_active"`
}

// ProductRow is a product catalog entry used by the fallback template search.
type ProductRow struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
}

// Placeholder names shown when a lookup joined to nothing. Applied when the
// enriched WorkPlan is assembled; raw rows keep nil.
const (
	NoRoomName    = "ไม่ระบุห้อง"
	NoStatusName  = "ไม่ระบุสถานะ"
	NoMachineName = "ไม่ระบุเครื่องจักร"
)

type WorkPlan struct {
	ID               int           `json:"id"`
	ProductionDate   string        `json:"production_date"`
	JobCode          string        `json:"job_code"`
	JobName          string        `json:"job_name"`
	StartTime        *string       `json:"start_time"`
	EndTime          *string       `json:"end_time"`
	StatusID         *int          `json:"status_id"`
	MachineID        *int          `json:"machine_id"`
	ProductionRoomID *int          `json:"production_room_id"`
	Notes            *string       `json:"notes"`
	IsSpecial        bool          `json:"is_special"`
	Location         string        `json:"location"`
	Status           string        `json:"status"`
	MachineName      string        `json:"machine_name"`
	Assignees        []Assignee    `json:"assignees"`
	HasSteps         bool          `json:"hasSteps"`
	Steps            []ProcessStep `json:"steps"`
}

type Assignee struct {
	IDCode     string  `json:"id_code"`
	Name       string  `json:"name"`
	Avatar     string  `json:"avatar"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	Role       string  `json:"role"`
}

type ProcessStep struct {
	ProcessNumber            int     `json:"process_number"`
	ProcessDescription       string  `json:"process_description"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	StandardWorkerCount      int     `json:"standard_worker_count"`
	Percentage               float64 `json:"percentage"`
}
