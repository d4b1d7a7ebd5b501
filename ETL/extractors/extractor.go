package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LilVoxy/comm_star_schema/ETL/config"
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Имена обязательных колонок источника
const (
	ColumnCommType   = "comm_type"
	ColumnSubject    = "subject"
	ColumnRawContent = "raw_content"
)

// SourceRow представляет строку источника до присвоения comm_id.
// nil означает пустую ячейку или NULL.
type SourceRow struct {
	CommType   *string
	Subject    *string
	RawContent *string
}

// RecordSource читает строки из конкретного источника
type RecordSource interface {
	// Name возвращает описание источника для логов
	Name() string

	// Rows возвращает все строки в порядке источника
	Rows(ctx context.Context) ([]SourceRow, error)
}

// Extractor координирует процесс извлечения исходных записей
type Extractor struct {
	source RecordSource
	logger *utils.ETLLogger
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(source RecordSource, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		source: source,
		logger: logger,
	}
}

// NewSource создает источник по конфигурации.
// db используется только для источника mysql и может быть nil для файловых источников.
func NewSource(cfg config.ETLConfig, db *sql.DB) (RecordSource, error) {
	switch cfg.SourceType() {
	case config.SourceXLSX:
		return NewXLSXSource(cfg.InputPath, cfg.Source.SheetName), nil
	case config.SourceCSV:
		return NewCSVSource(cfg.InputPath), nil
	case config.SourceMySQL:
		if db == nil {
			return nil, fmt.Errorf("для источника mysql требуется подключение к базе данных")
		}
		return NewMySQLSource(db, cfg.Source.Table, cfg.Source.OrderBy)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedSource, cfg.Source.Type)
	}
}

// Extract выполняет извлечение всех строк и присваивает им comm_id по порядку
func (e *Extractor) Extract(ctx context.Context) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart(e.source.Name())

	rows, err := e.source.Rows(ctx)
	if err != nil {
		e.logger.Error("Ошибка при чтении источника %s: %v", e.source.Name(), err)
		return nil, fmt.Errorf("ошибка чтения источника %s: %w", e.source.Name(), err)
	}

	records := make([]models.RawRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, models.RawRecord{
			CommID:     i + 1,
			CommType:   stringOrEmpty(row.CommType),
			Subject:    stringOrEmpty(row.Subject),
			RawContent: row.RawContent,
		})
	}

	e.logger.LogExtractComplete(len(records), time.Since(startTime))

	return &models.ExtractedData{
		Records:     records,
		Source:      e.source.Name(),
		ExtractedAt: time.Now(),
	}, nil
}

// columnIndexes находит позиции обязательных колонок в строке заголовка
func columnIndexes(header []string) (map[string]int, error) {
	indexes := make(map[string]int, 3)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := indexes[name]; !seen {
			indexes[name] = i
		}
	}

	for _, required := range []string{ColumnCommType, ColumnSubject, ColumnRawContent} {
		if _, ok := indexes[required]; !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrMissingColumn, required)
		}
	}
	return indexes, nil
}

// rowFromCells собирает SourceRow из ячеек; пустая ячейка превращается в nil
func rowFromCells(cells []string, indexes map[string]int) SourceRow {
	cell := func(column string) *string {
		i := indexes[column]
		if i >= len(cells) || cells[i] == "" {
			return nil
		}
		v := cells[i]
		return &v
	}

	return SourceRow{
		CommType:   cell(ColumnCommType),
		Subject:    cell(ColumnSubject),
		RawContent: cell(ColumnRawContent),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
