package transform

import (
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// UserAccumulator накапливает строки пользователей в порядке их появления
type UserAccumulator struct {
	rows []models.UserDimension
}

// Add добавляет строку пользователя
func (a *UserAccumulator) Add(user models.UserDimension) {
	a.rows = append(a.rows, user)
}

// Rows возвращает накопленные строки
func (a *UserAccumulator) Rows() []models.UserDimension {
	return a.rows
}

// CollectUsers добавляет пользователей одной коммуникации: сначала участников встречи,
// затем выступающих (только имя), затем участников по email (только email)
func CollectUsers(fields models.ProjectedFields, acc *UserAccumulator) {
	for _, a := range fields.MeetingAttendees {
		acc.Add(models.UserDimension{
			Name:        a.Name,
			Email:       a.Email,
			Location:    a.Location,
			DisplayName: a.DisplayName,
			PhoneNumber: a.PhoneNumber,
		})
	}

	for _, s := range fields.Speakers {
		acc.Add(models.UserDimension{
			Name:        s.Name,
			Email:       models.Null(),
			Location:    models.Null(),
			DisplayName: models.Null(),
			PhoneNumber: models.Null(),
		})
	}

	for _, email := range fields.Participants {
		acc.Add(models.UserDimension{
			Name:        models.Null(),
			Email:       email,
			Location:    models.Null(),
			DisplayName: models.Null(),
			PhoneNumber: models.Null(),
		})
	}
}

// UserDimensionProcessor отвечает за построение измерения пользователей
type UserDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewUserDimensionProcessor создает новый экземпляр UserDimensionProcessor
func NewUserDimensionProcessor(logger *utils.ETLLogger) *UserDimensionProcessor {
	return &UserDimensionProcessor{logger: logger}
}

// ProcessUserDimension собирает пользователей из всех коммуникаций и дедуплицирует их
// по точному совпадению всех пяти полей
func (p *UserDimensionProcessor) ProcessUserDimension(records []models.EnrichedRecord) []models.UserDimension {
	p.logger.Debug("Обработка измерения пользователей...")

	acc := &UserAccumulator{}
	for _, r := range records {
		CollectUsers(r.Fields, acc)
	}

	_, users := BuildDimension(acc.Rows(), models.UserDimension.Key)
	for i := range users {
		users[i].ID = i + 1
	}

	p.logger.Info("Обработано измерение пользователей. Упоминаний: %d, уникальных пользователей: %d",
		len(acc.Rows()), len(users))
	return users
}
