package transform

import (
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// BridgeProcessor отвечает за построение связей коммуникаций с пользователями
type BridgeProcessor struct {
	logger *utils.ETLLogger
}

// NewBridgeProcessor создает новый экземпляр BridgeProcessor
func NewBridgeProcessor(logger *utils.ETLLogger) *BridgeProcessor {
	return &BridgeProcessor{logger: logger}
}

// ProcessCommUserBridge строит по строке связи на каждого найденного участника встречи.
// Выступающие и участники без записи в meeting_attendees связей не получают.
// Возвращает связи и число участников, для которых пользователь не найден.
func (p *BridgeProcessor) ProcessCommUserBridge(records []models.EnrichedRecord, resolvers []UserResolver) ([]models.CommUserBridge, int) {
	p.logger.Debug("Построение связей коммуникаций с пользователями...")

	var bridges []models.CommUserBridge
	seen := make(map[models.CommUserBridge]struct{})
	unresolved := 0

	for _, r := range records {
		roles := newCommRoles(r.Fields)

		for _, attendee := range r.Fields.MeetingAttendees {
			userID, ok := ResolveUser(resolvers, attendee)
			if !ok {
				unresolved++
				p.logger.Debug("Участник comm_id %d не найден в dim_user, пропускаем", r.CommID)
				continue
			}

			bridge := models.CommUserBridge{
				CommID:        r.CommID,
				UserID:        userID,
				IsAttendee:    true,
				IsParticipant: roles.isParticipant(attendee),
				IsSpeaker:     roles.isSpeaker(attendee),
				IsOrganiser:   roles.isOrganiser(attendee),
			}
			if _, dup := seen[bridge]; dup {
				continue
			}
			seen[bridge] = struct{}{}
			bridges = append(bridges, bridge)
		}
	}

	p.logger.Info("Построено связей: %d, ненайденных участников: %d", len(bridges), unresolved)
	return bridges, unresolved
}

// commRoles содержит роли пользователей внутри одной коммуникации
type commRoles struct {
	participants   map[models.NaturalKey]struct{}
	speakers       map[models.NaturalKey]struct{}
	organizerEmail models.Value
}

func newCommRoles(fields models.ProjectedFields) commRoles {
	roles := commRoles{
		participants:   make(map[models.NaturalKey]struct{}, len(fields.Participants)),
		speakers:       make(map[models.NaturalKey]struct{}, len(fields.Speakers)),
		organizerEmail: fields.OrganizerEmail,
	}
	for _, email := range fields.Participants {
		roles.participants[email.Key()] = struct{}{}
	}
	for _, s := range fields.Speakers {
		roles.speakers[s.Name.Key()] = struct{}{}
	}
	return roles
}

func (r commRoles) isParticipant(a models.Attendee) bool {
	if !a.Email.Present() {
		return false
	}
	_, ok := r.participants[a.Email.Key()]
	return ok
}

func (r commRoles) isSpeaker(a models.Attendee) bool {
	if !a.Name.Present() {
		return false
	}
	_, ok := r.speakers[a.Name.Key()]
	return ok
}

func (r commRoles) isOrganiser(a models.Attendee) bool {
	if !a.Email.Present() {
		return false
	}
	return a.Email.Key() == r.organizerEmail.Key()
}
