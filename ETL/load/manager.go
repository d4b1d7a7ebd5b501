package load

import (
	"context"
	"fmt"
	"time"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// LoadManager отвечает за управление процессом выгрузки данных
type LoadManager struct {
	logger  *utils.ETLLogger
	loaders []Loader
}

// NewLoadManager создает новый экземпляр LoadManager.
// Загрузчики вызываются в переданном порядке.
func NewLoadManager(logger *utils.ETLLogger, loaders ...Loader) *LoadManager {
	return &LoadManager{
		logger:  logger,
		loaders: loaders,
	}
}

// Load выполняет фазу выгрузки данных ETL-процесса.
// Первая ошибка прерывает выгрузку; уже записанные цели не откатываются.
func (m *LoadManager) Load(ctx context.Context, transformedData *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Выгрузка данных)")

	for _, loader := range m.loaders {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.logger.Info("Выгрузка в %s...", loader.Name())
		if err := loader.Load(ctx, transformedData); err != nil {
			m.logger.Error("Ошибка при выгрузке в %s: %v", loader.Name(), err)
			return fmt.Errorf("ошибка при выгрузке в %s: %w", loader.Name(), err)
		}
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))
	return nil
}
