package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
)

func TestCollectUsersOrder(t *testing.T) {
	fields := ProjectFields(ParsePayload(strPtr(`{
		"participants": ["p@x.com"],
		"speakers": [{"name": "Bob"}],
		"meeting_attendees": [{"name": "Alice", "email": "a@x.com", "location": "HQ"}]
	}`)))

	acc := &UserAccumulator{}
	CollectUsers(fields, acc)

	rows := acc.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, models.String("Alice"), rows[0].Name)
	assert.Equal(t, models.String("HQ"), rows[0].Location)

	assert.Equal(t, models.String("Bob"), rows[1].Name)
	assert.True(t, rows[1].Email.IsNull())
	assert.True(t, rows[1].PhoneNumber.IsNull())

	assert.True(t, rows[2].Name.IsNull())
	assert.Equal(t, models.String("p@x.com"), rows[2].Email)
}

func TestProcessUserDimensionDedupsFullTuple(t *testing.T) {
	records := enrich(t,
		rawRecord(1, "meeting", "a", `{
			"meeting_attendees": [{"name": "Alice", "email": "a@x.com"}, {"name": "Alice", "email": "a@x.com", "location": "HQ"}],
			"participants": ["a@x.com"]
		}`),
		rawRecord(2, "meeting", "b", `{
			"meeting_attendees": [{"name": "Alice", "email": "a@x.com"}],
			"speakers": [{"name": "Alice"}],
			"participants": ["a@x.com"]
		}`),
	)

	users := NewUserDimensionProcessor(newTestLogger(t)).ProcessUserDimension(records)

	// Alice, Alice@HQ, участник по email и выступающий по имени
	require.Len(t, users, 4)
	for i, u := range users {
		assert.Equal(t, i+1, u.ID)
	}
	assert.True(t, users[0].Location.IsNull())
	assert.Equal(t, models.String("HQ"), users[1].Location)
	assert.True(t, users[2].Name.IsNull())
	assert.Equal(t, models.String("a@x.com"), users[2].Email)
	assert.Equal(t, models.String("Alice"), users[3].Name)
	assert.True(t, users[3].Email.IsNull())

	keys := make(map[models.UserKey]struct{})
	for _, u := range users {
		keys[u.Key()] = struct{}{}
	}
	assert.Len(t, keys, len(users))
}

func TestProcessUserDimensionNoPeople(t *testing.T) {
	records := enrich(t, rawRecord(1, "call", "a", `{"title": "solo"}`))

	users := NewUserDimensionProcessor(newTestLogger(t)).ProcessUserDimension(records)
	assert.Empty(t, users)
}
