package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// TaskRepo persists tasks in the tasks table, always scoped by owner. There
// is no pagination and no transaction spanning multiple tasks: every
// operation is a single statement.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) (*TaskRepo, error) {
	repo := &TaskRepo{db: db}

	if err := repo.createTable(); err != nil {
		return nil, fmt.Errorf("could not initialize tasks table: %w", err)
	}

	return repo, nil
}

func (r *TaskRepo) createTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS tasks(
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err := r.db.Exec(createTableQuery)
	return err
}

// List returns every task owned by ownerID, newest first.
func (r *TaskRepo) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	/*In Go, we use placeholders ($1, $2) instead of string formatting. This
	tells the database driver to sanitize the input, which prevents SQL
	injection attacks.*/
	query := `SELECT id, user_id, title, description, due_date, status, created_at
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a new task for ownerID. The id is assigned here and the
// creation timestamp by the store; both come back on the returned task.
func (r *TaskRepo) Create(ctx context.Context, ownerID string, fields models.TaskFields) (models.Task, error) {
	query := `INSERT INTO tasks (id, user_id, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	task := models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Status:      fields.Status,
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.DueDate, task.Status,
	).Scan(&task.CreatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update overwrites the editable fields of a task. Last write wins: there is
// no version check and a concurrent earlier write is silently replaced.
func (r *TaskRepo) Update(ctx context.Context, taskID, ownerID string, fields models.TaskFields) error {
	query := `UPDATE tasks SET title = $1, description = $2, due_date = $3, status = $4
		WHERE id = $5 AND user_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		fields.Title, fields.Description, fields.DueDate, fields.Status, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a task. No soft delete, no history.
func (r *TaskRepo) Delete(ctx context.Context, taskID, ownerID string) error {
	query := "DELETE FROM tasks WHERE id = $1 AND user_id = $2"
	res, err := r.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
