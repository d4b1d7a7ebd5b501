package models

import (
	"time"
)

// Имена выходных таблиц
const (
	TableDimCommType       = "dim_comm_type"
	TableDimSubject        = "dim_subject"
	TableDimUser           = "dim_user"
	TableDimCalendar       = "dim_calendar"
	TableDimAudio          = "dim_audio"
	TableDimVideo          = "dim_video"
	TableDimTranscript     = "dim_transcript"
	TableFactCommunication = "fact_communication"
	TableBridgeCommUser    = "bridge_comm_user"
)

// TransformedData содержит трансформированные данные для загрузки
type TransformedData struct {
	// Измерения
	CommTypes   []CommTypeDimension
	Subjects    []SubjectDimension
	Users       []UserDimension
	Calendars   []CalendarDimension
	Audios      []AudioDimension
	Videos      []VideoDimension
	Transcripts []TranscriptDimension

	// Факты
	Communications []CommunicationFact

	// Связи
	CommUsers []CommUserBridge

	// Метаданные
	Metadata ETLMetadata
}

// ETLMetadata содержит метаданные о запуске ETL
type ETLMetadata struct {
	RunID               string        `json:"run_id"`
	Source              string        `json:"source"`
	LastRunTimestamp    time.Time     `json:"last_run_timestamp"`
	RecordsProcessed    int           `json:"records_processed"`
	MalformedPayloads   int           `json:"malformed_payloads"`
	UsersProcessed      int           `json:"users_processed"`
	BridgeRowsProduced  int           `json:"bridge_rows_produced"`
	UnresolvedAttendees int           `json:"unresolved_attendees"`
	TransformDuration   time.Duration `json:"transform_duration"`
}

// Table представляет таблицу в табличном виде для экспорта
type Table struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Tables возвращает все девять таблиц в порядке экспорта
func (d *TransformedData) Tables() []Table {
	return []Table{
		d.commTypeTable(),
		d.subjectTable(),
		d.userTable(),
		valueDimensionTable(TableDimCalendar, "record_calendar_id", "calendar_id", len(d.Calendars), func(i int) (Value, int) {
			return d.Calendars[i].CalendarID, d.Calendars[i].ID
		}),
		valueDimensionTable(TableDimAudio, "record_audio_url", "audio_id", len(d.Audios), func(i int) (Value, int) {
			return d.Audios[i].AudioURL, d.Audios[i].ID
		}),
		valueDimensionTable(TableDimVideo, "record_video_url", "video_id", len(d.Videos), func(i int) (Value, int) {
			return d.Videos[i].VideoURL, d.Videos[i].ID
		}),
		valueDimensionTable(TableDimTranscript, "record_transcript_url", "transcript_id", len(d.Transcripts), func(i int) (Value, int) {
			return d.Transcripts[i].TranscriptURL, d.Transcripts[i].ID
		}),
		d.factTable(),
		d.bridgeTable(),
	}
}

func (d *TransformedData) commTypeTable() Table {
	t := Table{Name: TableDimCommType, Columns: []string{"comm_type", "comm_type_id"}}
	t.Rows = make([][]interface{}, 0, len(d.CommTypes))
	for _, row := range d.CommTypes {
		t.Rows = append(t.Rows, []interface{}{row.CommType, row.ID})
	}
	return t
}

func (d *TransformedData) subjectTable() Table {
	t := Table{Name: TableDimSubject, Columns: []string{"subject", "subject_id"}}
	t.Rows = make([][]interface{}, 0, len(d.Subjects))
	for _, row := range d.Subjects {
		t.Rows = append(t.Rows, []interface{}{row.Subject, row.ID})
	}
	return t
}

func (d *TransformedData) userTable() Table {
	t := Table{
		Name:    TableDimUser,
		Columns: []string{"user_id", "name", "email", "location", "displayName", "phoneNumber"},
	}
	t.Rows = make([][]interface{}, 0, len(d.Users))
	for _, u := range d.Users {
		t.Rows = append(t.Rows, []interface{}{
			u.ID,
			u.Name.Interface(),
			u.Email.Interface(),
			u.Location.Interface(),
			u.DisplayName.Interface(),
			u.PhoneNumber.Interface(),
		})
	}
	return t
}

func valueDimensionTable(name, keyColumn, idColumn string, n int, row func(i int) (Value, int)) Table {
	t := Table{Name: name, Columns: []string{keyColumn, idColumn}}
	t.Rows = make([][]interface{}, 0, n)
	for i := 0; i < n; i++ {
		v, id := row(i)
		t.Rows = append(t.Rows, []interface{}{v.Interface(), id})
	}
	return t
}

func (d *TransformedData) factTable() Table {
	t := Table{
		Name: TableFactCommunication,
		Columns: []string{
			"comm_id", "raw_id", "source_id", "comm_type_id", "subject_id",
			"calendar_id", "audio_id", "video_id", "transcript_id",
			"datetime_id", "ingested_at", "processed_at",
			"is_processed", "raw_title", "raw_duration",
		},
	}
	t.Rows = make([][]interface{}, 0, len(d.Communications))
	for _, f := range d.Communications {
		t.Rows = append(t.Rows, []interface{}{
			f.CommID,
			f.RawID.Interface(),
			f.SourceID.Interface(),
			f.CommTypeID,
			f.SubjectID,
			f.CalendarID,
			f.AudioID,
			f.VideoID,
			f.TranscriptID,
			f.DatetimeID.Interface(),
			f.IngestedAt.Interface(),
			f.ProcessedAt.Interface(),
			f.IsProcessed.Interface(),
			f.RawTitle.Interface(),
			f.RawDuration.Interface(),
		})
	}
	return t
}

func (d *TransformedData) bridgeTable() Table {
	t := Table{
		Name:    TableBridgeCommUser,
		Columns: []string{"comm_id", "user_id", "isAttendee", "isParticipant", "isSpeaker", "isOrganiser"},
	}
	t.Rows = make([][]interface{}, 0, len(d.CommUsers))
	for _, b := range d.CommUsers {
		t.Rows = append(t.Rows, []interface{}{
			b.CommID, b.UserID, b.IsAttendee, b.IsParticipant, b.IsSpeaker, b.IsOrganiser,
		})
	}
	return t
}
