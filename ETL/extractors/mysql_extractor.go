package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MySQLSource извлекает строки коммуникаций из таблицы MySQL
type MySQLSource struct {
	db      *sql.DB
	table   string
	orderBy string
}

// NewMySQLSource создает новый экземпляр MySQLSource.
// Имена таблицы и колонки порядка подставляются в запрос, поэтому проверяются заранее.
func NewMySQLSource(db *sql.DB, table, orderBy string) (*MySQLSource, error) {
	for _, ident := range []string{table, orderBy} {
		if !identifierPattern.MatchString(ident) {
			return nil, fmt.Errorf("недопустимый идентификатор %q", ident)
		}
	}
	return &MySQLSource{
		db:      db,
		table:   table,
		orderBy: orderBy,
	}, nil
}

// Name возвращает описание источника
func (s *MySQLSource) Name() string {
	return "mysql:" + s.table
}

// Rows извлекает все строки таблицы в порядке колонки orderBy
func (s *MySQLSource) Rows(ctx context.Context) ([]SourceRow, error) {
	query := fmt.Sprintf(
		"SELECT comm_type, subject, raw_content FROM `%s` ORDER BY `%s`",
		s.table, s.orderBy,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса коммуникаций: %w", err)
	}
	defer rows.Close()

	var result []SourceRow
	for rows.Next() {
		var commType, subject, rawContent sql.NullString
		if err := rows.Scan(&commType, &subject, &rawContent); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки коммуникации: %w", err)
		}
		result = append(result, SourceRow{
			CommType:   nullStringPtr(commType),
			Subject:    nullStringPtr(subject),
			RawContent: nullStringPtr(rawContent),
		})
	}

	// Проверяем ошибки после итерации по результатам
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по коммуникациям: %w", err)
	}

	return result, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
