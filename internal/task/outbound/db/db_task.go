package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

const (
	taskColumns = "id, user_id, name, description, due_date, is_completed, created_at, updated_at"

	insertTask = "insert into tasks (" + taskColumns + ") values ($1, $2, $3, $4, $5, $6, $7, $8)"

	// $2 null lists both states
	selectTasksByUser = "select " + taskColumns + " from tasks " +
		"where user_id = $1 and ($2::boolean is null or is_completed = $2) order by id"

	selectTaskByUser = "select " + taskColumns + " from tasks where user_id = $1 and id = $2"

	updateTaskByUser = "update tasks set name = $3, description = $4, due_date = $5, is_completed = $6, updated_at = $7 " +
		"where user_id = $1 and id = $2"

	deleteTaskByUser = "delete from tasks where user_id = $1 and id = $2"
)

type taskRow struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r taskRow) entity() entity.Task {
	return entity.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		DueDate:     r.DueDate,
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *DB) CreateTask(ctx context.Context, task entity.Task) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTask")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertTask,
		task.ID, task.UserID, task.Name, task.Description,
		task.DueDate, task.IsCompleted, task.CreatedAt, task.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) ListTasks(ctx context.Context, filter entity.TaskFilter) (_ []entity.Task, err error) {
	ctx, span := s.startSpan(ctx, "ListTasks")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, selectTasksByUser, filter.UserID, filter.Completed)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[taskRow])
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(items, func(r taskRow, _ int) entity.Task { return r.entity() }), nil
}

func (s *DB) GetTask(ctx context.Context, userID, id int64) (_ *entity.Task, err error) {
	ctx, span := s.startSpan(ctx, "GetTask")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, selectTaskByUser, userID, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[taskRow])
	if err != nil {
		return nil, s.mapError(err)
	}

	task := row.entity()
	return &task, nil
}

func (s *DB) UpdateTask(ctx context.Context, task entity.Task) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateTask")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateTaskByUser,
		task.UserID, task.ID, task.Name, task.Description,
		task.DueDate, task.IsCompleted, task.UpdatedAt,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

func (s *DB) DeleteTask(ctx context.Context, userID, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteTask")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteTaskByUser, userID, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
