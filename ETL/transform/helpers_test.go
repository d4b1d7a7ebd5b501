package transform

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

func newTestLogger(t *testing.T) *utils.ETLLogger {
	return utils.NewETLLoggerFromZap(zaptest.NewLogger(t), true)
}

func rawRecord(commID int, commType, subject, content string) models.RawRecord {
	return models.RawRecord{
		CommID:     commID,
		CommType:   commType,
		Subject:    subject,
		RawContent: &content,
	}
}

func enrich(t *testing.T, records ...models.RawRecord) []models.EnrichedRecord {
	enriched, _ := NewPayloadProcessor(newTestLogger(t)).ProcessPayloads(records)
	return enriched
}
