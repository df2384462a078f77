package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

const operatorColumns = `id, user_id, name, email, phone, hourly_rate, task_skills, equipment,
	jobs_completed, revenue_generated, hours_worked, avg_production_rate,
	rating_cleanliness, rating_communication, rating_overall, rating_count, created_at, updated_at`

func scanOperator(row rowScanner) (*models.Operator, error) {
	var (
		o             models.Operator
		skills, equip []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.Email, &o.Phone, &o.HourlyRate, &skills, &equip,
		&o.Metrics.JobsCompleted, &o.Metrics.RevenueGenerated, &o.Metrics.HoursWorked, &o.Metrics.AverageProductionRate,
		&o.Ratings.Cleanliness, &o.Ratings.Communication, &o.Ratings.Overall, &o.Ratings.Count,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.TaskSkills = map[string]int{}
	o.Equipment = map[string]models.EquipmentQualification{}
	if err := unmarshalJSON(skills, &o.TaskSkills); err != nil {
		return nil, fmt.Errorf("failed to decode task skills: %w", err)
	}
	if err := unmarshalJSON(equip, &o.Equipment); err != nil {
		return nil, fmt.Errorf("failed to decode equipment: %w", err)
	}
	return &o, nil
}

func (d *DatabaseClient) CreateOperator(ctx context.Context, o *models.Operator) (*models.Operator, error) {
	skills, err := marshalJSON(o.TaskSkills)
	if err != nil {
		return nil, err
	}
	equip, err := marshalJSON(o.Equipment)
	if err != nil {
		return nil, err
	}
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO operators (id, user_id, name, email, phone, hourly_rate, task_skills, equipment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+operatorColumns,
		o.ID, o.UserID, o.Name, o.Email, o.Phone, o.HourlyRate, skills, equip)
	created, err := scanOperator(row)
	if err != nil {
		return nil, classify(err, "create operator")
	}
	return created, nil
}

func (d *DatabaseClient) GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	o, err := scanOperator(d.db.QueryRowContext(ctx, `SELECT `+operatorColumns+` FROM operators WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get operator")
	}
	return o, nil
}

func (d *DatabaseClient) GetOperatorByUserID(ctx context.Context, userID uuid.UUID) (*models.Operator, error) {
	o, err := scanOperator(d.db.QueryRowContext(ctx, `SELECT `+operatorColumns+` FROM operators WHERE user_id = $1`, userID))
	if err != nil {
		return nil, classify(err, "get operator by user")
	}
	return o, nil
}

func (d *DatabaseClient) ListOperators(ctx context.Context) ([]models.Operator, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+operatorColumns+` FROM operators ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	var ops []models.Operator
	for rows.Next() {
		o, err := scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		ops = append(ops, *o)
	}
	return ops, rows.Err()
}

// UpdateOperatorProfile writes the admin-editable fields. Concurrent edits
// are last-write-wins.
func (d *DatabaseClient) UpdateOperatorProfile(ctx context.Context, o *models.Operator) error {
	skills, err := marshalJSON(o.TaskSkills)
	if err != nil {
		return err
	}
	equip, err := marshalJSON(o.Equipment)
	if err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx, `
		UPDATE operators
		SET name = $1, email = $2, phone = $3, hourly_rate = $4, task_skills = $5, equipment = $6, updated_at = NOW()
		WHERE id = $7
	`, o.Name, o.Email, o.Phone, o.HourlyRate, skills, equip, o.ID)
	if err != nil {
		return classify(err, "update operator")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("update operator: %w", ErrNotFound)
	}
	return nil
}

// UpdateOperatorPerformance writes metrics and rating averages computed by
// the caller.
func (d *DatabaseClient) UpdateOperatorPerformance(ctx context.Context, id uuid.UUID, m models.OperatorMetrics, r models.OperatorRatings) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE operators
		SET jobs_completed = $1, revenue_generated = $2, hours_worked = $3, avg_production_rate = $4,
			rating_cleanliness = $5, rating_communication = $6, rating_overall = $7, rating_count = $8,
			updated_at = NOW()
		WHERE id = $9
	`, m.JobsCompleted, m.RevenueGenerated, m.HoursWorked, m.AverageProductionRate,
		r.Cleanliness, r.Communication, r.Overall, r.Count, id)
	if err != nil {
		return classify(err, "update operator performance")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("update operator performance: %w", ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) AddCertification(ctx context.Context, c *models.Certification) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO operator_certifications (id, operator_id, name, issued_date, expires_date, document_path)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.OperatorID, c.Name, c.IssuedDate, c.ExpiresDate, c.DocumentPath)
	return classify(err, "add certification")
}

func (d *DatabaseClient) ListCertifications(ctx context.Context, operatorID uuid.UUID) ([]models.Certification, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, operator_id, name, issued_date, expires_date, document_path, created_at
		FROM operator_certifications
		WHERE operator_id = $1
		ORDER BY issued_date DESC
	`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	defer rows.Close()

	var certs []models.Certification
	for rows.Next() {
		var c models.Certification
		if err := rows.Scan(&c.ID, &c.OperatorID, &c.Name, &c.IssuedDate, &c.ExpiresDate, &c.DocumentPath, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
