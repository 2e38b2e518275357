package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"production-schedule/internal/storage"
)

// ActiveTemplates returns the standard-time steps for an exact product code,
// restricted to the highest version among active rows for that code.
func (s *Storage) ActiveTemplates(ctx context.Context, productCode string) ([]*storage.TemplateRow, error) {
	const op = "storage.mysql.template.ActiveTemplates"

	stmt := `SELECT pt.id, pt.product_code, pt.version, pt.process_number,
	       pt.process_description, pt.estimated_duration_minutes,
	       pt.standard_worker_count, pt.required_machine_type,
	       pt.required_room_type, pt.notes, pt.is_active
	FROM process_templates pt
	WHERE pt.product_code = ?
	  AND pt.is_active = TRUE
	  AND pt.version = (
	      SELECT MAX(version)
	      FROM process_templates pt2
	      WHERE pt2.product_code = pt.product_code
	        AND pt2.is_active = TRUE
	  )
	ORDER BY pt.process_number`

	rows, err := s.db.QueryContext(ctx, stmt, productCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var templates []*storage.TemplateRow
	for rows.Next() {
		var (
			template                     storage.TemplateRow
			machineType, roomType, notes sql.NullString
		)

		err := rows.Scan(
			&template.ID,
			&template.ProductCode,
			&template.Version,
			&template.ProcessNumber,
			&template.ProcessDescription,
			&template.EstimatedDurationMinutes,
			&template.StandardWorkerCount,
			&machineType,
			&roomType,
			&notes,
			&template.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		template.RequiredMachineType = nullString(machineType)
		template.RequiredRoomType = nullString(roomType)
		template.Notes = nullString(notes)

		templates = append(templates, &template)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return templates, nil
}

// SearchProducts looks up catalog entries whose name or code contains the
// pattern (pattern already carries the % wildcards). Capped at 10 candidates
// like the fallback search this feeds.
func (s *Storage) SearchProducts(ctx context.Context, pattern string) ([]*storage.ProductRow, error) {
	const op = "storage.mysql.template.SearchProducts"

	stmt := `SELECT p.product_code, p.product_name
	FROM products p
	WHERE p.product_name LIKE ? OR p.product_code LIKE ?
	LIMIT 10`

	rows, err := s.db.QueryContext(ctx, stmt, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []*storage.ProductRow
	for rows.Next() {
		var product storage.ProductRow
		if err := rows.Scan(&product.ProductCode, &product.ProductName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, &product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}
