package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Типы колонок, отличные от TEXT
var olapColumnTypes = map[string]string{
	"comm_id":       "INT NOT NULL",
	"comm_type_id":  "INT NOT NULL",
	"subject_id":    "INT NOT NULL",
	"user_id":       "INT NOT NULL",
	"calendar_id":   "INT NOT NULL",
	"audio_id":      "INT NOT NULL",
	"video_id":      "INT NOT NULL",
	"transcript_id": "INT NOT NULL",
	"isAttendee":    "BOOLEAN NOT NULL",
	"isParticipant": "BOOLEAN NOT NULL",
	"isSpeaker":     "BOOLEAN NOT NULL",
	"isOrganiser":   "BOOLEAN NOT NULL",
}

// OLAPLoader выгружает звездную схему в базу данных MySQL.
// Каждая таблица пересоздаётся при каждом запуске.
type OLAPLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewOLAPLoader создает новый экземпляр OLAPLoader
func NewOLAPLoader(db *sql.DB, logger *utils.ETLLogger) *OLAPLoader {
	return &OLAPLoader{
		db:     db,
		logger: logger,
	}
}

// Name возвращает описание цели
func (l *OLAPLoader) Name() string {
	return "mysql"
}

// Load пересоздаёт и заполняет все девять таблиц
func (l *OLAPLoader) Load(ctx context.Context, data *models.TransformedData) error {
	for _, table := range data.Tables() {
		if err := l.loadTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

func (l *OLAPLoader) loadTable(ctx context.Context, table models.Table) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки таблицы %s (всего: %d)", table.Name, len(table.Rows))

	if _, err := l.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table.Name)); err != nil {
		return fmt.Errorf("ошибка при удалении таблицы %s: %w", table.Name, err)
	}
	if _, err := l.db.ExecContext(ctx, createTableStatement(table)); err != nil {
		return fmt.Errorf("ошибка при создании таблицы %s: %w", table.Name, err)
	}

	if len(table.Rows) == 0 {
		l.logger.Debug("Нет строк для загрузки в %s", table.Name)
		return nil
	}

	stmt, err := l.db.PrepareContext(ctx, insertStatement(table))
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса для %s: %w", table.Name, err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("ошибка при вставке строки %d в %s: %w", i+1, table.Name, err)
		}

		// Логируем прогресс каждые 1000 строк
		if (i+1)%1000 == 0 {
			l.logger.Debug("Загружено %d из %d строк в %s...", i+1, len(table.Rows), table.Name)
		}
	}

	l.logger.Info("Загрузка таблицы %s завершена. Длительность: %v", table.Name, time.Since(startTime))
	return nil
}

func createTableStatement(table models.Table) string {
	columns := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		columnType, ok := olapColumnTypes[c]
		if !ok {
			columnType = "TEXT NULL"
		}
		columns = append(columns, fmt.Sprintf("`%s` %s", c, columnType))
	}
	return fmt.Sprintf("CREATE TABLE `%s` (%s)", table.Name, strings.Join(columns, ", "))
}

func insertStatement(table models.Table) string {
	columns := make([]string, len(table.Columns))
	placeholders := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = "`" + c + "`"
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
		table.Name, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}
