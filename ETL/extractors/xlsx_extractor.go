package extractors

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource читает строки коммуникаций из книги Excel
type XLSXSource struct {
	path      string
	sheetName string
}

// NewXLSXSource создает новый экземпляр XLSXSource
func NewXLSXSource(path, sheetName string) *XLSXSource {
	return &XLSXSource{
		path:      path,
		sheetName: sheetName,
	}
}

// Name возвращает описание источника
func (s *XLSXSource) Name() string {
	return "xlsx:" + s.path
}

// Rows читает лист книги целиком; первая строка считается заголовком
func (s *XLSXSource) Rows(ctx context.Context) ([]SourceRow, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия книги: %w", err)
	}
	defer f.Close()

	sheet := s.sheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("лист %q пуст: нет строки заголовка", sheet)
	}

	indexes, err := columnIndexes(cells[0])
	if err != nil {
		return nil, err
	}

	rows := make([]SourceRow, 0, len(cells)-1)
	for _, line := range cells[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, rowFromCells(line, indexes))
	}
	return rows, nil
}
