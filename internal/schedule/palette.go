package schedule

// Palette is cycled through plans in row order; the color marks the plan,
// not the task type.
var Palette = []string{
	"3B82F6", "10B981", "F59E0B", "EF4444", "8B5CF6",
	"06B6D4", "84CC16", "F97316", "EC4899", "6366F1",
}

// Gray fills: warning bars, pack steps and clean steps.
const (
	WarningFill = "6B7280"
	PackFill    = "9CA3AF"
	CleanFill   = "E5E7EB"
)

// PlanColor picks the palette color for the plan at the given row index.
func PlanColor(index int) string {
	return Palette[index%len(Palette)]
}
