// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/model"
)

// PersonRepository 人员仓储
type PersonRepository struct {
	db DB
}

// NewPersonRepository 创建人员仓储
func NewPersonRepository(db DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create 创建人员
func (r *PersonRepository) Create(ctx context.Context, p *model.Person) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	specialtiesJSON, _ := json.Marshal(p.Specialties)
	leaveJSON, _ := json.Marshal(p.LeaveDates)
	prefsJSON, _ := json.Marshal(p.Preferences)

	query := `
		INSERT INTO people (
			id, name, code, email, phone, status, seniority,
			max_weekly_hours, max_consecutive_shifts, min_rest_hours,
			specialties, leave_dates, preferences, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Code, p.Email, p.Phone, p.Status, p.Seniority,
		p.MaxWeeklyHours, p.MaxConsecutiveShifts, p.MinRestHours,
		specialtiesJSON, leaveJSON, prefsJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "创建人员失败")
	}

	return nil
}

// GetByID 根据ID获取人员
func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Person, error) {
	query := `
		SELECT id, name, code, email, phone, status, seniority,
			max_weekly_hours, max_consecutive_shifts, min_rest_hours,
			specialties, leave_dates, preferences, created_at, updated_at
		FROM people
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanPerson(r.db.QueryRowContext(ctx, query, id))
}

// GetByCode 根据工号获取人员
func (r *PersonRepository) GetByCode(ctx context.Context, code string) (*model.Person, error) {
	query := `
		SELECT id, name, code, email, phone, status, seniority,
			max_weekly_hours, max_consecutive_shifts, min_rest_hours,
			specialties, leave_dates, preferences, created_at, updated_at
		FROM people
		WHERE code = $1 AND deleted_at IS NULL
	`

	return r.scanPerson(r.db.QueryRowContext(ctx, query, code))
}

// Update 更新人员
func (r *PersonRepository) Update(ctx context.Context, p *model.Person) error {
	p.UpdatedAt = time.Now()

	specialtiesJSON, _ := json.Marshal(p.Specialties)
	leaveJSON, _ := json.Marshal(p.LeaveDates)
	prefsJSON, _ := json.Marshal(p.Preferences)

	query := `
		UPDATE people SET
			name = $2, code = $3, email = $4, phone = $5, status = $6, seniority = $7,
			max_weekly_hours = $8, max_consecutive_shifts = $9, min_rest_hours = $10,
			specialties = $11, leave_dates = $12, preferences = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Code, p.Email, p.Phone, p.Status, p.Seniority,
		p.MaxWeeklyHours, p.MaxConsecutiveShifts, p.MinRestHours,
		specialtiesJSON, leaveJSON, prefsJSON, p.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "更新人员失败")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("人员", p.ID.String())
	}

	return nil
}

// Delete 软删除人员
func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE people SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "删除人员失败")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("人员", id.String())
	}

	return nil
}

// List 查询人员列表
func (r *PersonRepository) List(ctx context.Context, filter ListFilter) ([]*model.Person, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	// 查询总数
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM people WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "查询总数失败")
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	query := fmt.Sprintf(`
		SELECT id, name, code, email, phone, status, seniority,
			max_weekly_hours, max_consecutive_shifts, min_rest_hours,
			specialties, leave_dates, preferences, created_at, updated_at
		FROM people
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, orderDir, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "查询列表失败")
	}
	defer rows.Close()

	var people []*model.Person
	for rows.Next() {
		p, err := r.scanPersonRow(rows)
		if err != nil {
			return nil, 0, err
		}
		people = append(people, p)
	}

	return people, total, nil
}

// ListActive 获取所有在职人员，按工号排序保证排班输入顺序稳定
func (r *PersonRepository) ListActive(ctx context.Context) ([]*model.Person, error) {
	filter := DefaultListFilter().WithStatus("active").WithLimit(10000)
	filter.OrderBy = "code"
	filter.OrderDir = "asc"
	people, _, err := r.List(ctx, filter)
	return people, err
}

// scanPerson 扫描单行人员数据
func (r *PersonRepository) scanPerson(row *sql.Row) (*model.Person, error) {
	p := &model.Person{}
	var specialtiesJSON, leaveJSON, prefsJSON []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Email, &p.Phone, &p.Status, &p.Seniority,
		&p.MaxWeeklyHours, &p.MaxConsecutiveShifts, &p.MinRestHours,
		&specialtiesJSON, &leaveJSON, &prefsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "扫描人员数据失败")
	}

	json.Unmarshal(specialtiesJSON, &p.Specialties)
	json.Unmarshal(leaveJSON, &p.LeaveDates)
	json.Unmarshal(prefsJSON, &p.Preferences)

	return p, nil
}

// scanPersonRow 扫描Rows中的人员数据
func (r *PersonRepository) scanPersonRow(rows *sql.Rows) (*model.Person, error) {
	p := &model.Person{}
	var specialtiesJSON, leaveJSON, prefsJSON []byte

	err := rows.Scan(
		&p.ID, &p.Name, &p.Code, &p.Email, &p.Phone, &p.Status, &p.Seniority,
		&p.MaxWeeklyHours, &p.MaxConsecutiveShifts, &p.MinRestHours,
		&specialtiesJSON, &leaveJSON, &prefsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "扫描人员数据失败")
	}

	json.Unmarshal(specialtiesJSON, &p.Specialties)
	json.Unmarshal(leaveJSON, &p.LeaveDates)
	json.Unmarshal(prefsJSON, &p.Preferences)

	return p, nil
}
