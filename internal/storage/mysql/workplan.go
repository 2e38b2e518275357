package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"production-schedule/internal/storage"
)

var ErrWorkPlanNotFound = errors.New("work plan not found")

const workPlanColumns = `
	wp.id,
	DATE_FORMAT(wp.production_date, '%Y-%m-%d'),
	wp.job_code,
	wp.job_name,
	TIME_FORMAT(wp.start_time, '%H:%i'),
	TIME_FORMAT(wp.end_time, '%H:%i'),
	wp.status_id,
	wp.machine_id,
	wp.production_room_id,
	wp.notes,
	wp.is_special,
	pr.room_name,
	ps.name,
	m.machine_name`

const workPlanJoins = `
	FROM work_plans wp
	LEFT JOIN production_rooms pr ON wp.production_room_id = pr.id
	LEFT JOIN production_statuses ps ON wp.status_id = ps.id
	LEFT JOIN machines m ON wp.machine_id = m.id`

func (s *Storage) WorkPlanRowsByDate(ctx context.Context, date string) ([]*storage.WorkPlanRow, error) {
	const op = "storage.mysql.workplan.WorkPlanRowsByDate"

	stmt := `SELECT` + workPlanColumns + workPlanJoins + `
	WHERE wp.production_date = ?
	ORDER BY wp.start_time`

	rows, err := s.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var plans []*storage.WorkPlanRow
	for rows.Next() {
		plan, err := scanWorkPlanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		plans = append(plans, plan)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return plans, nil
}

func (s *Storage) WorkPlanRowByID(ctx context.Context, id int) (*storage.WorkPlanRow, error) {
	const op = "storage.mysql.workplan.WorkPlanRowByID"

	stmt := `SELECT` + workPlanColumns + workPlanJoins + `
	WHERE wp.id = ?`

	rows, err := s.db.QueryContext(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: id=%d: %w", op, id, ErrWorkPlanNotFound)
	}

	plan, err := scanWorkPlanRow(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return plan, nil
}

func scanWorkPlanRow(rows *sql.Rows) (*storage.WorkPlanRow, error) {
	var (
		plan                 storage.WorkPlanRow
		startTime, endTime   sql.NullString
		statusID, machineID  sql.NullInt64
		roomID               sql.NullInt64
		notes                sql.NullString
		location, status     sql.NullString
		machineName          sql.NullString
	)

	err := rows.Scan(
		&plan.ID,
		&plan.ProductionDate,
		&plan.JobCode,
		&plan.JobName,
		&startTime,
		&endTime,
		&statusID,
		&machineID,
		&roomID,
		&notes,
		&plan.IsSpecial,
		&location,
		&status,
		&machineName,
	)
	if err != nil {
		return nil, err
	}

	plan.StartTime = nullString(startTime)
	plan.EndTime = nullString(endTime)
	plan.StatusID = nullInt(statusID)
	plan.MachineID = nullInt(machineID)
	plan.ProductionRoomID = nullInt(roomID)
	plan.Notes = nullString(notes)
	plan.Location = nullString(location)
	plan.Status = nullString(status)
	plan.MachineName = nullString(machineName)

	return &plan, nil
}

// OperatorRowsByPlanIDs fetches assignments for all plans of a date in one
// batch. The join against users is by id_code, not by user_id.
func (s *Storage) OperatorRowsByPlanIDs(ctx context.Context, planIDs []int) ([]*storage.OperatorRow, error) {
	const op = "storage.mysql.workplan.OperatorRowsByPlanIDs"

	if len(planIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(planIDs))
	placeholders = placeholders[:len(placeholders)-1]

	stmt := `SELECT wpo.work_plan_id, wpo.user_id, wpo.id_code, wpo.role,
	       u.name, u.position, u.department
	FROM work_plan_operators wpo
	LEFT JOIN users u ON wpo.id_code = u.id_code
	WHERE wpo.work_plan_id IN (` + placeholders + `)
	ORDER BY wpo.work_plan_id, wpo.id`

	args := make([]interface{}, len(planIDs))
	for i, id := range planIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var operators []*storage.OperatorRow
	for rows.Next() {
		var (
			operator                       storage.OperatorRow
			userID                         sql.NullInt64
			userName, position, department sql.NullString
		)

		err := rows.Scan(&operator.WorkPlanID, &userID, &operator.IDCode, &operator.Role,
			&userName, &position, &department)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		operator.UserID = nullInt(userID)
		operator.UserName = nullString(userName)
		operator.Position = nullString(position)
		operator.Department = nullString(department)

		operators = append(operators, &operator)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return operators, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
