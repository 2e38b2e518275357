// Package workplans assembles enriched work plans out of the raw storage
// rows: lookup placeholders, operator grouping and the standard-time step
// breakdown.
package workplans

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"production-schedule/internal/storage"
)

type Storage interface {
	WorkPlanRowsByDate(ctx context.Context, date string) ([]*storage.WorkPlanRow, error)
	WorkPlanRowByID(ctx context.Context, id int) (*storage.WorkPlanRow, error)
	OperatorRowsByPlanIDs(ctx context.Context, planIDs []int) ([]*storage.OperatorRow, error)
	ActiveTemplates(ctx context.Context, productCode string) ([]*storage.TemplateRow, error)
	SearchProducts(ctx context.Context, pattern string) ([]*storage.ProductRow, error)
}

type Service struct {
	storage Storage
	log     *slog.Logger
}

func New(storage Storage, log *slog.Logger) *Service {
	return &Service{storage: storage, log: log}
}

// WorkPlansByDate returns all plans of a date ordered by start time, each
// with lookup names, assignees and steps resolved. A date with no plans is
// an empty slice, not an error.
func (s *Service) WorkPlansByDate(ctx context.Context, date string) ([]*storage.WorkPlan, error) {
	const op = "service.workplans.WorkPlansByDate"

	rows, err := s.storage.WorkPlanRowsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) == 0 {
		return []*storage.WorkPlan{}, nil
	}

	planIDs := make([]int, len(rows))
	for i, row := range rows {
		planIDs[i] = row.ID
	}

	operators, err := s.storage.OperatorRowsByPlanIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	assigneesByPlan := groupAssignees(operators)

	plans := make([]*storage.WorkPlan, len(rows))

	// Steps are resolved concurrently across plans; the fallback lookups
	// inside one plan stay sequential.
	g, gCtx := errgroup.WithContext(ctx)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			plan := assemblePlan(row, assigneesByPlan[row.ID])
			plan.HasSteps, plan.Steps = s.resolveSteps(gCtx, row)
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return plans, nil
}

// WorkPlanByID returns one enriched plan. Storage reports a missing id as
// mysql.ErrWorkPlanNotFound, which callers map to 404.
func (s *Service) WorkPlanByID(ctx context.Context, id int) (*storage.WorkPlan, error) {
	const op = "service.workplans.WorkPlanByID"

	row, err := s.storage.WorkPlanRowByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	operators, err := s.storage.OperatorRowsByPlanIDs(ctx, []int{row.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	assigneesByPlan := groupAssignees(operators)

	plan := assemblePlan(row, assigneesByPlan[row.ID])
	plan.HasSteps, plan.Steps = s.resolveSteps(ctx, row)

	return plan, nil
}

// groupAssignees keeps the query order (plan id, then assignment id) inside
// each plan's list. Display name falls back to the id_code when the user
// directory has no match.
func groupAssignees(operators []*storage.OperatorRow) map[int][]storage.Assignee {
	byPlan := make(map[int][]storage.Assignee)
	for _, operator := range operators {
		name := operator.IDCode
		if operator.UserName != nil && *operator.UserName != "" {
			name = *operator.UserName
		}

		byPlan[operator.WorkPlanID] = append(byPlan[operator.WorkPlanID], storage.Assignee{
			IDCode:     operator.IDCode,
			Name:       name,
			Avatar:     "", // mapped by the frontend
			Position:   operator.Position,
			Department: operator.Department,
			Role:       operator.Role,
		})
	}
	return byPlan
}

func assemblePlan(row *storage.WorkPlanRow, assignees []storage.Assignee) *storage.WorkPlan {
	if assignees == nil {
		assignees = []storage.Assignee{}
	}

	return &storage.WorkPlan{
		ID:               row.ID,
		ProductionDate:   row.ProductionDate,
		JobCode:          row.JobCode,
		JobName:          row.JobName,
		StartTime:        row.StartTime,
		EndTime:          row.EndTime,
		StatusID:         row.StatusID,
		MachineID:        row.MachineID,
		ProductionRoomID: row.ProductionRoomID,
		Notes:            row.Notes,
		IsSpecial:        row.IsSpecial,
		Location:         orPlaceholder(row.Location, storage.NoRoomName),
		Status:           orPlaceholder(row.Status, storage.NoStatusName),
		MachineName:      orPlaceholder(row.MachineName, storage.NoMachineName),
		Assignees:        assignees,
		Steps:            []storage.ProcessStep{},
	}
}

func orPlaceholder(v *string, placeholder string) string {
	if v == nil || *v == "" {
		return placeholder
	}
	return *v
}
