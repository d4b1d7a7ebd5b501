package load

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// WorkbookLoader записывает таблицы звездной схемы в книгу Excel, по листу на таблицу
type WorkbookLoader struct {
	path   string
	logger *utils.ETLLogger
}

// NewWorkbookLoader создает новый экземпляр WorkbookLoader
func NewWorkbookLoader(path string, logger *utils.ETLLogger) *WorkbookLoader {
	return &WorkbookLoader{
		path:   path,
		logger: logger,
	}
}

// Name возвращает описание цели
func (l *WorkbookLoader) Name() string {
	return "xlsx:" + l.path
}

// Load записывает девять листов, в первой строке каждого листа имена колонок
func (l *WorkbookLoader) Load(ctx context.Context, data *models.TransformedData) error {
	startTime := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, table := range data.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return fmt.Errorf("ошибка переименования листа %s: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("ошибка создания листа %s: %w", table.Name, err)
		}

		if err := writeSheet(f, table); err != nil {
			return err
		}
		l.logger.Debug("Записан лист %s: %d строк", table.Name, len(table.Rows))
	}

	if err := f.SaveAs(l.path); err != nil {
		return fmt.Errorf("ошибка сохранения книги %s: %w", l.path, err)
	}

	l.logger.Info("Книга %s записана. Длительность: %v", l.path, time.Since(startTime))
	return nil
}

func writeSheet(f *excelize.File, table models.Table) error {
	sw, err := f.NewStreamWriter(table.Name)
	if err != nil {
		return fmt.Errorf("ошибка открытия листа %s: %w", table.Name, err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("ошибка записи заголовка листа %s: %w", table.Name, err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("ошибка записи строки %d листа %s: %w", i+2, table.Name, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка записи листа %s: %w", table.Name, err)
	}
	return nil
}
