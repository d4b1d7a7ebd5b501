package load

import (
	"context"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
)

// Loader интерфейс для выгрузки звездной схемы в целевое хранилище
type Loader interface {
	// Name возвращает описание цели для логов
	Name() string

	// Load выгружает все таблицы звездной схемы
	Load(ctx context.Context, data *models.TransformedData) error
}
