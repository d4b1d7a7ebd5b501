package transform

import (
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Dimension хранит натуральные ключи измерения в порядке первого появления.
// Суррогатный ключ равен позиции ключа плюс один.
type Dimension[K comparable] struct {
	keys  []K
	index map[K]int
}

// NewDimension создает пустое измерение
func NewDimension[K comparable]() *Dimension[K] {
	return &Dimension[K]{index: make(map[K]int)}
}

// Add добавляет ключ, если он ещё не встречался, и возвращает его суррогатный ключ
// вместе с признаком того, что ключ новый
func (d *Dimension[K]) Add(key K) (int, bool) {
	if id, ok := d.index[key]; ok {
		return id, false
	}
	d.keys = append(d.keys, key)
	id := len(d.keys)
	d.index[key] = id
	return id, true
}

// Lookup возвращает суррогатный ключ по натуральному ключу
func (d *Dimension[K]) Lookup(key K) (int, bool) {
	id, ok := d.index[key]
	return id, ok
}

// Len возвращает количество строк измерения
func (d *Dimension[K]) Len() int {
	return len(d.keys)
}

// BuildDimension дедуплицирует элементы по ключу с сохранением порядка первого появления.
// Возвращает измерение и первые встреченные элементы для каждого ключа:
// элемент с индексом i получил суррогатный ключ i+1.
func BuildDimension[T any, K comparable](items []T, key func(T) K) (*Dimension[K], []T) {
	dim := NewDimension[K]()
	var firstSeen []T
	for _, item := range items {
		if _, added := dim.Add(key(item)); added {
			firstSeen = append(firstSeen, item)
		}
	}
	return dim, firstSeen
}

// DimensionSet содержит все измерения коммуникаций, кроме пользователей
type DimensionSet struct {
	CommTypes   []models.CommTypeDimension
	Subjects    []models.SubjectDimension
	Calendars   []models.CalendarDimension
	Audios      []models.AudioDimension
	Videos      []models.VideoDimension
	Transcripts []models.TranscriptDimension

	commType   *Dimension[string]
	subject    *Dimension[string]
	calendar   *Dimension[models.NaturalKey]
	audio      *Dimension[models.NaturalKey]
	video      *Dimension[models.NaturalKey]
	transcript *Dimension[models.NaturalKey]
}

// DimensionProcessor отвечает за построение измерений коммуникаций
type DimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewDimensionProcessor создает новый экземпляр DimensionProcessor
func NewDimensionProcessor(logger *utils.ETLLogger) *DimensionProcessor {
	return &DimensionProcessor{logger: logger}
}

// ProcessDimensions строит шесть измерений по строкам коммуникаций
func (p *DimensionProcessor) ProcessDimensions(records []models.EnrichedRecord) *DimensionSet {
	p.logger.Debug("Построение измерений коммуникаций...")

	set := &DimensionSet{}

	var commTypes []models.EnrichedRecord
	set.commType, commTypes = BuildDimension(records, func(r models.EnrichedRecord) string { return r.CommType })
	for i, r := range commTypes {
		set.CommTypes = append(set.CommTypes, models.CommTypeDimension{ID: i + 1, CommType: r.CommType})
	}

	var subjects []models.EnrichedRecord
	set.subject, subjects = BuildDimension(records, func(r models.EnrichedRecord) string { return r.Subject })
	for i, r := range subjects {
		set.Subjects = append(set.Subjects, models.SubjectDimension{ID: i + 1, Subject: r.Subject})
	}

	var calendars []models.Value
	set.calendar, calendars = buildValueDimension(records, func(f models.ProjectedFields) models.Value { return f.CalendarID })
	for i, v := range calendars {
		set.Calendars = append(set.Calendars, models.CalendarDimension{ID: i + 1, CalendarID: v})
	}

	var audios []models.Value
	set.audio, audios = buildValueDimension(records, func(f models.ProjectedFields) models.Value { return f.AudioURL })
	for i, v := range audios {
		set.Audios = append(set.Audios, models.AudioDimension{ID: i + 1, AudioURL: v})
	}

	var videos []models.Value
	set.video, videos = buildValueDimension(records, func(f models.ProjectedFields) models.Value { return f.VideoURL })
	for i, v := range videos {
		set.Videos = append(set.Videos, models.VideoDimension{ID: i + 1, VideoURL: v})
	}

	var transcripts []models.Value
	set.transcript, transcripts = buildValueDimension(records, func(f models.ProjectedFields) models.Value { return f.TranscriptURL })
	for i, v := range transcripts {
		set.Transcripts = append(set.Transcripts, models.TranscriptDimension{ID: i + 1, TranscriptURL: v})
	}

	p.logger.Info("Построены измерения: типов %d, тем %d, календарей %d, аудио %d, видео %d, расшифровок %d",
		len(set.CommTypes), len(set.Subjects), len(set.Calendars),
		len(set.Audios), len(set.Videos), len(set.Transcripts))

	return set
}

// buildValueDimension строит измерение по одному извлечённому полю
func buildValueDimension(records []models.EnrichedRecord, field func(models.ProjectedFields) models.Value) (*Dimension[models.NaturalKey], []models.Value) {
	values := make([]models.Value, 0, len(records))
	for _, r := range records {
		values = append(values, field(r.Fields))
	}
	return BuildDimension(values, models.Value.Key)
}
