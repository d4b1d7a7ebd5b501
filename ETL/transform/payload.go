package transform

import (
	"encoding/json"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Имена полей raw_content
const (
	FieldID               = "id"
	FieldTitle            = "title"
	FieldDuration         = "duration"
	FieldAudioURL         = "audio_url"
	FieldVideoURL         = "video_url"
	FieldCalendarID       = "calendar_id"
	FieldTranscriptURL    = "transcript_url"
	FieldSourceID         = "source_id"
	FieldStartTime        = "start_time"
	FieldIsProcessed      = "is_processed"
	FieldIngestedAt       = "ingested_at"
	FieldProcessedAt      = "processed_at"
	FieldMeetingAttendees = "meeting_attendees"
	FieldSpeakers         = "speakers"
	FieldParticipants     = "participants"
	FieldOrganizerEmail   = "organizer_email"
)

// PayloadProcessor разбирает raw_content и извлекает поля для каждой строки
type PayloadProcessor struct {
	logger *utils.ETLLogger
}

// NewPayloadProcessor создает новый экземпляр PayloadProcessor
func NewPayloadProcessor(logger *utils.ETLLogger) *PayloadProcessor {
	return &PayloadProcessor{logger: logger}
}

// ProcessPayloads возвращает строки, дополненные извлечёнными полями,
// и количество непустых raw_content, которые не удалось разобрать
func (p *PayloadProcessor) ProcessPayloads(records []models.RawRecord) ([]models.EnrichedRecord, int) {
	p.logger.Debug("Разбор raw_content для %d строк...", len(records))

	enriched := make([]models.EnrichedRecord, 0, len(records))
	malformed := 0
	for _, record := range records {
		payload, ok := parsePayload(record.RawContent)
		if !ok && record.RawContent != nil {
			malformed++
			p.logger.Debug("Не удалось разобрать raw_content для comm_id %d", record.CommID)
		}
		enriched = append(enriched, models.EnrichedRecord{
			RawRecord: record,
			Fields:    ProjectFields(payload),
		})
	}

	p.logger.Info("Разобрано raw_content: %d строк, некорректных: %d", len(enriched), malformed)
	return enriched, malformed
}

// ParsePayload разбирает JSON-строку в отображение.
// Любая ошибка, nil или JSON, не являющийся объектом, дают пустое отображение.
func ParsePayload(raw *string) models.Payload {
	payload, _ := parsePayload(raw)
	return payload
}

func parsePayload(raw *string) (models.Payload, bool) {
	if raw == nil {
		return models.Payload{}, false
	}

	var decoded interface{}
	if err := utils.PayloadJSON.UnmarshalFromString(*raw, &decoded); err != nil {
		return models.Payload{}, false
	}

	object, ok := decoded.(map[string]interface{})
	if !ok {
		return models.Payload{}, false
	}
	return models.Payload(object), true
}

// ProjectFields извлекает именованные поля из Payload; отсутствующие поля становятся null
func ProjectFields(payload models.Payload) models.ProjectedFields {
	return models.ProjectedFields{
		ID:            valueOf(payload[FieldID]),
		Title:         valueOf(payload[FieldTitle]),
		Duration:      valueOf(payload[FieldDuration]),
		AudioURL:      valueOf(payload[FieldAudioURL]),
		VideoURL:      valueOf(payload[FieldVideoURL]),
		CalendarID:    valueOf(payload[FieldCalendarID]),
		TranscriptURL: valueOf(payload[FieldTranscriptURL]),
		SourceID:      valueOf(payload[FieldSourceID]),
		StartTime:     valueOf(payload[FieldStartTime]),
		IsProcessed:   valueOf(payload[FieldIsProcessed]),
		IngestedAt:    valueOf(payload[FieldIngestedAt]),
		ProcessedAt:   valueOf(payload[FieldProcessedAt]),

		MeetingAttendees: attendeesOf(payload[FieldMeetingAttendees]),
		Speakers:         speakersOf(payload[FieldSpeakers]),
		Participants:     participantsOf(payload[FieldParticipants]),
		OrganizerEmail:   valueOf(payload[FieldOrganizerEmail]),
	}
}

// valueOf приводит произвольное JSON-значение к models.Value
func valueOf(v interface{}) models.Value {
	switch t := v.(type) {
	case nil:
		return models.Null()
	case string:
		return models.String(t)
	case json.Number:
		return models.Number(t.String())
	case jsoniter.Number:
		return models.Number(t.String())
	case float64:
		return models.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case bool:
		return models.Bool(t)
	default:
		data, err := utils.PayloadJSON.Marshal(t)
		if err != nil {
			return models.Null()
		}
		return models.JSON(string(data))
	}
}

func attendeesOf(v interface{}) []models.Attendee {
	list, _ := v.([]interface{})
	attendees := make([]models.Attendee, 0, len(list))
	for _, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		attendees = append(attendees, models.Attendee{
			Name:        valueOf(object["name"]),
			Email:       valueOf(object["email"]),
			Location:    valueOf(object["location"]),
			DisplayName: valueOf(object["displayName"]),
			PhoneNumber: valueOf(object["phoneNumber"]),
		})
	}
	return attendees
}

func speakersOf(v interface{}) []models.Speaker {
	list, _ := v.([]interface{})
	speakers := make([]models.Speaker, 0, len(list))
	for _, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		speakers = append(speakers, models.Speaker{Name: valueOf(object["name"])})
	}
	return speakers
}

func participantsOf(v interface{}) []models.Value {
	list, _ := v.([]interface{})
	participants := make([]models.Value, 0, len(list))
	for _, item := range list {
		participants = append(participants, valueOf(item))
	}
	return participants
}
