package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Transformer координирует преобразование строк коммуникаций в звездную схему
type Transformer struct {
	logger             *utils.ETLLogger
	payloadProcessor   *PayloadProcessor
	dimProcessor       *DimensionProcessor
	userDimProcessor   *UserDimensionProcessor
	commFactsProcessor *CommunicationFactsProcessor
	bridgeProcessor    *BridgeProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger:             logger,
		payloadProcessor:   NewPayloadProcessor(logger),
		dimProcessor:       NewDimensionProcessor(logger),
		userDimProcessor:   NewUserDimensionProcessor(logger),
		commFactsProcessor: NewCommunicationFactsProcessor(logger),
		bridgeProcessor:    NewBridgeProcessor(logger),
	}
}

// Transform выполняет полный процесс преобразования извлечённых строк.
// runID записывается в метаданные результата.
func (t *Transformer) Transform(ctx context.Context, runID string, extractedData *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformedData := &models.TransformedData{}

	// 1. Разбор raw_content и извлечение полей
	records, malformed := t.payloadProcessor.ProcessPayloads(extractedData.Records)

	// 2. Измерения коммуникаций
	dims := t.dimProcessor.ProcessDimensions(records)
	transformedData.CommTypes = dims.CommTypes
	transformedData.Subjects = dims.Subjects
	transformedData.Calendars = dims.Calendars
	transformedData.Audios = dims.Audios
	transformedData.Videos = dims.Videos
	transformedData.Transcripts = dims.Transcripts

	// 3. Измерение пользователей
	transformedData.Users = t.userDimProcessor.ProcessUserDimension(records)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Факты коммуникаций
	facts, err := t.commFactsProcessor.ProcessCommunicationFacts(records, dims)
	if err != nil {
		t.logger.Error("Ошибка при сборке фактов коммуникаций: %v", err)
		return nil, fmt.Errorf("ошибка при сборке фактов коммуникаций: %w", err)
	}
	transformedData.Communications = facts

	// 5. Связи коммуникаций с пользователями
	resolvers := DefaultUserResolvers(NewUserIndex(transformedData.Users))
	bridges, unresolved := t.bridgeProcessor.ProcessCommUserBridge(records, resolvers)
	transformedData.CommUsers = bridges

	duration := time.Since(startTime)

	// Заполняем метаданные
	transformedData.Metadata = models.ETLMetadata{
		RunID:               runID,
		Source:              extractedData.Source,
		LastRunTimestamp:    time.Now(),
		RecordsProcessed:    len(records),
		MalformedPayloads:   malformed,
		UsersProcessed:      len(transformedData.Users),
		BridgeRowsProduced:  len(bridges),
		UnresolvedAttendees: unresolved,
		TransformDuration:   duration,
	}

	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return transformedData, nil
}
