package models

// CommTypeDimension представляет измерение типов коммуникаций
type CommTypeDimension struct {
	ID       int
	CommType string
}

// SubjectDimension представляет измерение тем
type SubjectDimension struct {
	ID      int
	Subject string
}

// CalendarDimension представляет измерение календарей
type CalendarDimension struct {
	ID         int
	CalendarID Value
}

// AudioDimension представляет измерение аудиозаписей
type AudioDimension struct {
	ID       int
	AudioURL Value
}

// VideoDimension представляет измерение видеозаписей
type VideoDimension struct {
	ID       int
	VideoURL Value
}

// TranscriptDimension представляет измерение расшифровок
type TranscriptDimension struct {
	ID            int
	TranscriptURL Value
}

// UserDimension представляет измерение пользователей
type UserDimension struct {
	ID          int
	Name        Value
	Email       Value
	Location    Value
	DisplayName Value
	PhoneNumber Value
}

// UserKey представляет натуральный ключ пользователя: все пять полей
type UserKey struct {
	Name        NaturalKey
	Email       NaturalKey
	Location    NaturalKey
	DisplayName NaturalKey
	PhoneNumber NaturalKey
}

// Key возвращает натуральный ключ пользователя
func (u UserDimension) Key() UserKey {
	return UserKey{
		Name:        u.Name.Key(),
		Email:       u.Email.Key(),
		Location:    u.Location.Key(),
		DisplayName: u.DisplayName.Key(),
		PhoneNumber: u.PhoneNumber.Key(),
	}
}

// CommunicationFact представляет факт коммуникации
type CommunicationFact struct {
	CommID       int
	RawID        Value
	SourceID     Value
	CommTypeID   int
	SubjectID    int
	CalendarID   int
	AudioID      int
	VideoID      int
	TranscriptID int
	DatetimeID   Value
	IngestedAt   Value
	ProcessedAt  Value
	IsProcessed  Value
	RawTitle     Value
	RawDuration  Value
}

// CommUserBridge связывает коммуникацию с пользователем и хранит его роли
type CommUserBridge struct {
	CommID        int
	UserID        int
	IsAttendee    bool
	IsParticipant bool
	IsSpeaker     bool
	IsOrganiser   bool
}
