package extractors

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource читает строки коммуникаций из CSV-файла
type CSVSource struct {
	path string
}

// NewCSVSource создает новый экземпляр CSVSource
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name возвращает описание источника
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// Rows читает файл целиком; первая строка считается заголовком
func (s *CSVSource) Rows(ctx context.Context) ([]SourceRow, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	return readCSV(ctx, file)
}

func readCSV(ctx context.Context, r io.Reader) ([]SourceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("файл пуст: нет строки заголовка")
		}
		return nil, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}

	indexes, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var rows []SourceRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rowFromCells(line, indexes))
	}
	return rows, nil
}
