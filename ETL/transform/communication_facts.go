package transform

import (
	"fmt"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// CommunicationFactsProcessor отвечает за сборку фактов коммуникаций
type CommunicationFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewCommunicationFactsProcessor создает новый экземпляр CommunicationFactsProcessor
func NewCommunicationFactsProcessor(logger *utils.ETLLogger) *CommunicationFactsProcessor {
	return &CommunicationFactsProcessor{logger: logger}
}

// ProcessCommunicationFacts собирает по одному факту на каждую строку, заменяя
// натуральные ключи суррогатными. Промах поиска в измерении считается ошибкой целостности.
func (p *CommunicationFactsProcessor) ProcessCommunicationFacts(records []models.EnrichedRecord, dims *DimensionSet) ([]models.CommunicationFact, error) {
	p.logger.Debug("Обработка фактов коммуникаций...")

	facts := make([]models.CommunicationFact, 0, len(records))
	for _, r := range records {
		fact := models.CommunicationFact{
			CommID:      r.CommID,
			RawID:       r.Fields.ID,
			SourceID:    r.Fields.SourceID,
			DatetimeID:  r.Fields.StartTime,
			IngestedAt:  r.Fields.IngestedAt,
			ProcessedAt: r.Fields.ProcessedAt,
			IsProcessed: r.Fields.IsProcessed,
			RawTitle:    r.Fields.Title,
			RawDuration: r.Fields.Duration,
		}

		lookups := []dimensionLookup{
			lookup(models.TableDimCommType, &fact.CommTypeID, dims.commType, r.CommType),
			lookup(models.TableDimSubject, &fact.SubjectID, dims.subject, r.Subject),
			lookup(models.TableDimCalendar, &fact.CalendarID, dims.calendar, r.Fields.CalendarID.Key()),
			lookup(models.TableDimAudio, &fact.AudioID, dims.audio, r.Fields.AudioURL.Key()),
			lookup(models.TableDimVideo, &fact.VideoID, dims.video, r.Fields.VideoURL.Key()),
			lookup(models.TableDimTranscript, &fact.TranscriptID, dims.transcript, r.Fields.TranscriptURL.Key()),
		}
		for _, l := range lookups {
			if !l.ok {
				p.logger.Error("Натуральный ключ строки comm_id %d не найден в %s", r.CommID, l.table)
				return nil, fmt.Errorf("%w: %s, comm_id %d", models.ErrDimensionLookupMiss, l.table, r.CommID)
			}
			*l.target = l.id
		}

		facts = append(facts, fact)
	}

	p.logger.Info("Обработано фактов коммуникаций: %d", len(facts))
	return facts, nil
}

// dimensionLookup хранит результат поиска суррогатного ключа для одного измерения
type dimensionLookup struct {
	table  string
	target *int
	id     int
	ok     bool
}

func lookup[K comparable](table string, target *int, dim *Dimension[K], key K) dimensionLookup {
	l := dimensionLookup{table: table, target: target}
	if dim != nil {
		l.id, l.ok = dim.Lookup(key)
	}
	return l
}
