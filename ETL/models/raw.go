package models

import (
	"time"
)

// RawRecord представляет строку исходной таблицы коммуникаций
type RawRecord struct {
	CommID     int // суррогатный ключ: позиция строки + 1
	CommType   string
	Subject    string
	RawContent *string
}

// Payload представляет разобранное содержимое raw_content
type Payload map[string]interface{}

// Attendee представляет участника встречи из meeting_attendees
type Attendee struct {
	Name        Value
	Email       Value
	Location    Value
	DisplayName Value
	PhoneNumber Value
}

// Speaker представляет выступающего из speakers
type Speaker struct {
	Name Value
}

// ProjectedFields содержит поля, извлечённые из Payload
type ProjectedFields struct {
	ID            Value
	Title         Value
	Duration      Value
	AudioURL      Value
	VideoURL      Value
	CalendarID    Value
	TranscriptURL Value
	SourceID      Value
	StartTime     Value
	IsProcessed   Value
	IngestedAt    Value
	ProcessedAt   Value

	MeetingAttendees []Attendee
	Speakers         []Speaker
	Participants     []Value
	OrganizerEmail   Value
}

// EnrichedRecord объединяет исходную строку с извлечёнными полями
type EnrichedRecord struct {
	RawRecord
	Fields ProjectedFields
}

// ExtractedData содержит данные, извлечённые из источника
type ExtractedData struct {
	Records     []RawRecord
	Source      string
	ExtractedAt time.Time
}
