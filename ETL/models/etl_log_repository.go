package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу для логирования ETL процесса, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		records_processed INT DEFAULT 0,
		users_processed INT DEFAULT 0,
		bridge_rows_produced INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLETLLogRepository) CreateLogEntry(ctx context.Context, runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO etl_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.ExecContext(ctx, query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(ctx context.Context, id int, endTime time.Time, stats ETLRunStats) error {
	executionTime, err := r.executionTime(ctx, id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'success',
		records_processed = ?,
		users_processed = ?,
		bridge_rows_produced = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.ExecContext(ctx, query,
		endTime,
		stats.RecordsProcessed,
		stats.UsersProcessed,
		stats.BridgeRowsProduced,
		executionTime,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(ctx context.Context, id int, endTime time.Time, errorMessage string) error {
	executionTime, err := r.executionTime(ctx, id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, endTime, errorMessage, executionTime, id); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MySQLETLLogRepository) GetLastSuccessfulRun(ctx context.Context) (*ETLRunLog, error) {
	query := `
	SELECT
		id, run_id, start_time, end_time, status,
		records_processed, users_processed, bridge_rows_produced,
		IFNULL(error_message, ''), execution_time_seconds
	FROM etl_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var log ETLRunLog
	err := r.db.QueryRowContext(ctx, query).Scan(
		&log.ID, &log.RunID, &log.StartTime, &log.EndTime, &log.Status,
		&log.RecordsProcessed, &log.UsersProcessed, &log.BridgeRowsProduced,
		&log.ErrorMessage, &log.ExecutionTimeSeconds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске ETL: %w", err)
	}

	return &log, nil
}

// executionTime рассчитывает время выполнения в секундах по времени начала из журнала
func (r *MySQLETLLogRepository) executionTime(ctx context.Context, id int, endTime time.Time) (float64, error) {
	var startTime time.Time
	err := r.db.QueryRowContext(ctx, "SELECT start_time FROM etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}
	return endTime.Sub(startTime).Seconds(), nil
}

// MemoryETLLogRepository хранит журнал запусков в памяти процесса.
// Используется, когда загрузка в MySQL отключена.
type MemoryETLLogRepository struct {
	mu   sync.Mutex
	runs []ETLRunLog
}

// NewMemoryETLLogRepository создает новый экземпляр MemoryETLLogRepository
func NewMemoryETLLogRepository() *MemoryETLLogRepository {
	return &MemoryETLLogRepository{}
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MemoryETLLogRepository) CreateLogEntry(_ context.Context, runID string, startTime time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, ETLRunLog{
		ID:        len(r.runs) + 1,
		RunID:     runID,
		StartTime: startTime,
		Status:    RunStatusInProgress,
	})
	return len(r.runs), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MemoryETLLogRepository) UpdateLogEntrySuccess(_ context.Context, id int, endTime time.Time, stats ETLRunStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.get(id)
	if err != nil {
		return err
	}
	run.EndTime = endTime
	run.Status = RunStatusSuccess
	run.RecordsProcessed = stats.RecordsProcessed
	run.UsersProcessed = stats.UsersProcessed
	run.BridgeRowsProduced = stats.BridgeRowsProduced
	run.ExecutionTimeSeconds = endTime.Sub(run.StartTime).Seconds()
	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MemoryETLLogRepository) UpdateLogEntryFailure(_ context.Context, id int, endTime time.Time, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.get(id)
	if err != nil {
		return err
	}
	run.EndTime = endTime
	run.Status = RunStatusFailed
	run.ErrorMessage = errorMessage
	run.ExecutionTimeSeconds = endTime.Sub(run.StartTime).Seconds()
	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MemoryETLLogRepository) GetLastSuccessfulRun(_ context.Context) (*ETLRunLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.runs) - 1; i >= 0; i-- {
		if r.runs[i].Status == RunStatusSuccess {
			run := r.runs[i]
			return &run, nil
		}
	}
	return nil, nil
}

func (r *MemoryETLLogRepository) get(id int) (*ETLRunLog, error) {
	if id < 1 || id > len(r.runs) {
		return nil, fmt.Errorf("запись о запуске ETL %d не найдена", id)
	}
	return &r.runs[id-1], nil
}
