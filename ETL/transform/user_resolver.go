package transform

import (
	"github.com/LilVoxy/comm_star_schema/ETL/models"
)

// UserIndex индексирует измерение пользователей по email и по имени.
// Для каждого значения хранится наименьший user_id.
type UserIndex struct {
	byEmail map[models.NaturalKey]int
	byName  map[models.NaturalKey]int
}

// NewUserIndex строит индекс по строкам измерения пользователей
func NewUserIndex(users []models.UserDimension) *UserIndex {
	idx := &UserIndex{
		byEmail: make(map[models.NaturalKey]int),
		byName:  make(map[models.NaturalKey]int),
	}
	for _, u := range users {
		if !u.Email.IsNull() {
			if _, ok := idx.byEmail[u.Email.Key()]; !ok {
				idx.byEmail[u.Email.Key()] = u.ID
			}
		}
		if !u.Name.IsNull() {
			if _, ok := idx.byName[u.Name.Key()]; !ok {
				idx.byName[u.Name.Key()] = u.ID
			}
		}
	}
	return idx
}

// UserResolver ищет пользователя измерения для участника встречи
type UserResolver interface {
	Resolve(attendee models.Attendee) (int, bool)
}

// UserResolverFunc позволяет использовать функцию как UserResolver
type UserResolverFunc func(attendee models.Attendee) (int, bool)

// Resolve вызывает f(attendee)
func (f UserResolverFunc) Resolve(attendee models.Attendee) (int, bool) {
	return f(attendee)
}

// EmailResolver ищет пользователя по email; пустой email не ищется
func EmailResolver(idx *UserIndex) UserResolver {
	return UserResolverFunc(func(a models.Attendee) (int, bool) {
		if !a.Email.Present() {
			return 0, false
		}
		id, ok := idx.byEmail[a.Email.Key()]
		return id, ok
	})
}

// NameResolver ищет пользователя по имени; пустое имя не ищется
func NameResolver(idx *UserIndex) UserResolver {
	return UserResolverFunc(func(a models.Attendee) (int, bool) {
		if !a.Name.Present() {
			return 0, false
		}
		id, ok := idx.byName[a.Name.Key()]
		return id, ok
	})
}

// DefaultUserResolvers возвращает стратегии в порядке приоритета: email, затем имя
func DefaultUserResolvers(idx *UserIndex) []UserResolver {
	return []UserResolver{EmailResolver(idx), NameResolver(idx)}
}

// ResolveUser возвращает результат первой успешной стратегии
func ResolveUser(resolvers []UserResolver, attendee models.Attendee) (int, bool) {
	for _, r := range resolvers {
		if id, ok := r.Resolve(attendee); ok {
			return id, true
		}
	}
	return 0, false
}
