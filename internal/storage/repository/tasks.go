package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/task-manager/internal/lib/apperr"
	"github.com/magabrotheeeer/task-manager/internal/models"
)

const taskColumns = `id, title, description, due_date, status, priority, recurring, user_id, created_at, updated_at`

// CreateTask вставляет новую задачу и возвращает её ID.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (int64, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tasks (title, description, due_date, status, priority, recurring, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status,
		task.Priority, task.Recurring, task.UserID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTask возвращает задачу по её ID.
func (s *Storage) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var t models.Task
	var dueDate sql.NullTime
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &dueDate, &t.Status,
		&t.Priority, &t.Recurring, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	return &t, nil
}

// ListTasks возвращает страницу задач согласно спецификации фильтра.
// Колонка и направление сортировки приходят только из allow-list пакета
// taskquery, поэтому подставляются в текст запроса напрямую.
func (s *Storage) ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := buildTaskWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM tasks%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		taskColumns, where, filter.SortField, strings.ToUpper(filter.SortOrder),
		len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountTasks возвращает количество задач, подходящих под тот же фильтр,
// что и ListTasks (сортировка и пагинация не учитываются).
func (s *Storage) CountTasks(ctx context.Context, filter models.TaskFilter) (int, error) {
	const op = "storage.CountTasks"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := buildTaskWhere(filter)
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListTasksByUser возвращает задачи конкретного пользователя с пагинацией.
func (s *Storage) ListTasksByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Task, error) {
	const op = "storage.ListTasksByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM tasks
			  WHERE user_id = $1
			  ORDER BY created_at ASC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTask применяет частичное обновление задачи: изменяются только
// ненулевые поля патча. Возвращает количество изменённых строк.
func (s *Storage) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (int, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sets []string
	var args []any
	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.DueDate != nil {
		appendSet("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.Priority != nil {
		appendSet("priority", *patch.Priority)
	}
	if patch.Recurring != nil {
		appendSet("recurring", *patch.Recurring)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTask удаляет задачу по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveTask(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tasks WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindTasksDueTomorrow находит незавершенные задачи со сроком завтра
// вместе с данными владельцев для отправки напоминаний.
func (s *Storage) FindTasksDueTomorrow(ctx context.Context) ([]*models.TaskReminder, error) {
	const op = "storage.FindTasksDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.name, t.title, t.due_date
			  FROM tasks t
			  JOIN users u ON t.user_id = u.id
			  WHERE t.due_date::DATE = CURRENT_DATE + INTERVAL '1 day'
			    AND t.status <> 'completed';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TaskReminder
	for rows.Next() {
		var reminder models.TaskReminder
		if err = rows.Scan(&reminder.Email, &reminder.Name,
			&reminder.Title, &reminder.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &reminder)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// likeEscaper экранирует метасимволы LIKE, чтобы текст поиска
// сопоставлялся как литеральная подстрока.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildTaskWhere строит условие WHERE из спецификации фильтра.
// Статус и поисковая дизъюнкция объединяются через AND; внутри поиска
// все активные условия объединяются через OR.
func buildTaskWhere(filter models.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Search != nil {
		var or []string
		args = append(args, "%"+likeEscaper.Replace(filter.Search.Text)+"%")
		pattern := len(args)
		for _, column := range []string{"title", "description", "recurring", "priority"} {
			or = append(or, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column, pattern))
		}
		if filter.Search.UserID != nil {
			args = append(args, *filter.Search.UserID)
			or = append(or, fmt.Sprintf("user_id = $%d", len(args)))
		}
		if filter.Search.Instant != nil {
			args = append(args, *filter.Search.Instant)
			instant := len(args)
			or = append(or,
				fmt.Sprintf("due_date = $%d", instant),
				fmt.Sprintf("created_at = $%d", instant),
			)
		}
		conds = append(conds, "("+strings.Join(or, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	var result []*models.Task
	for rows.Next() {
		var t models.Task
		var dueDate sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &dueDate, &t.Status,
			&t.Priority, &t.Recurring, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if dueDate.Valid {
			t.DueDate = &dueDate.Time
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
