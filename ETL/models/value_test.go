package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKey(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{name: "null matches null", a: Null(), b: Null(), equal: true},
		{name: "null differs from empty string", a: Null(), b: String(""), equal: false},
		{name: "integer and float notation", a: Number("1"), b: Number("1.0"), equal: true},
		{name: "exponent notation", a: Number("1e2"), b: Number("100"), equal: true},
		{name: "numeric string matches number", a: String("42"), b: Number("42"), equal: true},
		{name: "non-numeric string", a: String("abc"), b: String("abc"), equal: true},
		{name: "case is significant", a: String("Alice"), b: String("alice"), equal: false},
		{name: "whitespace is significant", a: String("a "), b: String("a"), equal: false},
		{name: "fraction kept", a: Number("1.5"), b: Number("1.50"), equal: true},
		{name: "different numbers", a: Number("1.5"), b: Number("2"), equal: false},
		{name: "large exponent and integer", a: Number("1e15"), b: Number("1000000000000000"), equal: true},
		{name: "large fraction and integer", a: Number("2000000000000000.0"), b: Number("2000000000000000"), equal: true},
		{name: "float rounding matches integer", a: Number("9007199254740993.0"), b: Number("9007199254740992"), equal: true},
		{name: "large exponent string and number", a: String("1e15"), b: Number("1000000000000000"), equal: true},
		{name: "string true differs from bool", a: String("true"), b: Bool(true), equal: false},
		{name: "string false differs from bool", a: String("false"), b: Bool(false), equal: false},
		{name: "json text differs from object", a: String(`{"a":1}`), b: JSON(`{"a":1}`), equal: false},
		{name: "json text differs from array", a: String(`[1]`), b: JSON(`[1]`), equal: false},
		{name: "same object", a: JSON(`{"a":1}`), b: JSON(`{"a":1}`), equal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Key() == tt.b.Key())
		})
	}
}

func TestValuePresent(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		present bool
	}{
		{name: "null", value: Null(), present: false},
		{name: "empty string", value: String(""), present: false},
		{name: "string", value: String("x"), present: true},
		{name: "zero string", value: String("0"), present: true},
		{name: "zero", value: Number("0"), present: false},
		{name: "zero float", value: Number("0.0"), present: false},
		{name: "non-zero", value: Number("3"), present: true},
		{name: "false", value: Bool(false), present: false},
		{name: "true", value: Bool(true), present: true},
		{name: "empty object", value: JSON("{}"), present: false},
		{name: "empty array", value: JSON("[]"), present: false},
		{name: "object", value: JSON(`{"a":1}`), present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.present, tt.value.Present())
		})
	}
}

func TestNumberCanonicalText(t *testing.T) {
	assert.Equal(t, "1000000000000000", Number("1e15").Text)
	assert.Equal(t, int64(1000000000000000), Number("1e15").Interface())
	assert.Equal(t, "1e+20", Number("1e20").Text)
	assert.Equal(t, Number("1e20").Key(), Number("100000000000000000000").Key())
}

func TestValueInterface(t *testing.T) {
	assert.Nil(t, Null().Interface())
	assert.Equal(t, "x", String("x").Interface())
	assert.Equal(t, int64(7), Number("7.0").Interface())
	assert.Equal(t, 2.5, Number("2.5").Interface())
	assert.Equal(t, true, Bool(true).Interface())
	assert.Equal(t, `{"a":1}`, JSON(`{"a":1}`).Interface())
}

func TestUserKeyDistinguishesFields(t *testing.T) {
	a := UserDimension{Name: String("Alice"), Email: String("a@x.com")}
	b := UserDimension{Name: String("Alice"), Email: String("a@x.com"), Location: String("HQ")}
	c := UserDimension{ID: 9, Name: String("Alice"), Email: String("a@x.com")}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), c.Key(), "surrogate key is not part of the natural key")
}

func TestTablesExportOrderAndColumns(t *testing.T) {
	data := &TransformedData{
		CommTypes: []CommTypeDimension{{ID: 1, CommType: "meeting"}},
		Subjects:  []SubjectDimension{{ID: 1, Subject: ""}},
		Users: []UserDimension{
			{ID: 1, Name: String("Alice"), Email: String("a@x.com"), Location: Null(), DisplayName: Null(), PhoneNumber: Null()},
		},
		Calendars:   []CalendarDimension{{ID: 1, CalendarID: Null()}},
		Audios:      []AudioDimension{{ID: 1, AudioURL: String("a.mp3")}},
		Videos:      []VideoDimension{{ID: 1, VideoURL: Null()}},
		Transcripts: []TranscriptDimension{{ID: 1, TranscriptURL: Null()}},
		Communications: []CommunicationFact{
			{CommID: 1, CommTypeID: 1, SubjectID: 1, CalendarID: 1, AudioID: 1, VideoID: 1, TranscriptID: 1, RawDuration: Number("30")},
		},
		CommUsers: []CommUserBridge{{CommID: 1, UserID: 1, IsAttendee: true, IsOrganiser: true}},
	}

	tables := data.Tables()

	names := make([]string, len(tables))
	for i, table := range tables {
		names[i] = table.Name
	}
	assert.Equal(t, []string{
		TableDimCommType, TableDimSubject, TableDimUser, TableDimCalendar, TableDimAudio,
		TableDimVideo, TableDimTranscript, TableFactCommunication, TableBridgeCommUser,
	}, names)

	assert.Equal(t, []string{"user_id", "name", "email", "location", "displayName", "phoneNumber"}, tables[2].Columns)
	assert.Equal(t, []interface{}{1, "Alice", "a@x.com", nil, nil, nil}, tables[2].Rows[0])

	assert.Equal(t, []string{"record_calendar_id", "calendar_id"}, tables[3].Columns)
	assert.Equal(t, []interface{}{nil, 1}, tables[3].Rows[0])

	fact := tables[7]
	assert.Len(t, fact.Columns, 15)
	assert.Len(t, fact.Rows[0], 15)
	assert.Equal(t, int64(30), fact.Rows[0][14])

	assert.Equal(t, []interface{}{1, 1, true, false, false, true}, tables[8].Rows[0])
}
