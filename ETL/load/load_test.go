package load

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

func newTestLogger(t *testing.T) *utils.ETLLogger {
	return utils.NewETLLoggerFromZap(zaptest.NewLogger(t), true)
}

func sampleData() *models.TransformedData {
	return &models.TransformedData{
		CommTypes:   []models.CommTypeDimension{{ID: 1, CommType: "meeting"}},
		Subjects:    []models.SubjectDimension{{ID: 1, Subject: "Planning"}},
		Users:       []models.UserDimension{{ID: 1, Name: models.String("Alice"), Email: models.String("a@x.com")}},
		Calendars:   []models.CalendarDimension{{ID: 1, CalendarID: models.Null()}},
		Audios:      []models.AudioDimension{{ID: 1, AudioURL: models.Null()}},
		Videos:      []models.VideoDimension{{ID: 1, VideoURL: models.Null()}},
		Transcripts: []models.TranscriptDimension{{ID: 1, TranscriptURL: models.Null()}},
		Communications: []models.CommunicationFact{{
			CommID: 1, CommTypeID: 1, SubjectID: 1, CalendarID: 1, AudioID: 1, VideoID: 1, TranscriptID: 1,
			RawTitle: models.String("Planning"), RawDuration: models.Number("45"),
		}},
		CommUsers: []models.CommUserBridge{{CommID: 1, UserID: 1, IsAttendee: true}},
		Metadata:  models.ETLMetadata{RunID: "run-1", RecordsProcessed: 1},
	}
}

func TestWorkbookLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, NewWorkbookLoader(path, newTestLogger(t)).Load(context.Background(), sampleData()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		models.TableDimCommType, models.TableDimSubject, models.TableDimUser,
		models.TableDimCalendar, models.TableDimAudio, models.TableDimVideo,
		models.TableDimTranscript, models.TableFactCommunication, models.TableBridgeCommUser,
	}, f.GetSheetList())

	rows, err := f.GetRows(models.TableDimUser)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"user_id", "name", "email", "location", "displayName", "phoneNumber"}, rows[0])
	require.GreaterOrEqual(t, len(rows[1]), 3)
	assert.Equal(t, []string{"1", "Alice", "a@x.com"}, rows[1][:3])

	rows, err = f.GetRows(models.TableFactCommunication)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "comm_id", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star.snap")
	require.NoError(t, NewSnapshotLoader(path, newTestLogger(t)).Load(context.Background(), sampleData()))

	snapshot, err := ReadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "run-1", snapshot.Metadata.RunID)
	require.Len(t, snapshot.Tables, 9)

	users, err := snapshot.Table(models.TableDimUser)
	require.NoError(t, err)
	require.Len(t, users.Rows, 1)
	assert.Equal(t, "Alice", users.Rows[0][1])
	assert.Nil(t, users.Rows[0][3])

	_, err = snapshot.Table("dim_missing")
	assert.ErrorIs(t, err, models.ErrUnknownTable)
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("definitely not snappy"))
	assert.Error(t, err)
}

func TestOLAPLoader(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	data := sampleData()
	for _, table := range data.Tables() {
		mock.ExpectExec("DROP TABLE IF EXISTS `" + table.Name + "`").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(createTableStatement(table)).WillReturnResult(sqlmock.NewResult(0, 0))
		prep := mock.ExpectPrepare(insertStatement(table))
		for range table.Rows {
			prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
		}
	}

	require.NoError(t, NewOLAPLoader(db, newTestLogger(t)).Load(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTableStatement(t *testing.T) {
	stmt := createTableStatement(models.Table{
		Name:    models.TableBridgeCommUser,
		Columns: []string{"comm_id", "user_id", "isAttendee"},
	})
	assert.Equal(t,
		"CREATE TABLE `bridge_comm_user` (`comm_id` INT NOT NULL, `user_id` INT NOT NULL, `isAttendee` BOOLEAN NOT NULL)",
		stmt)

	stmt = createTableStatement(models.Table{Name: models.TableDimSubject, Columns: []string{"subject", "subject_id"}})
	assert.Equal(t, "CREATE TABLE `dim_subject` (`subject` TEXT NULL, `subject_id` INT NOT NULL)", stmt)
}

type stubLoader struct {
	name   string
	err    error
	called bool
}

func (s *stubLoader) Name() string { return s.name }

func (s *stubLoader) Load(context.Context, *models.TransformedData) error {
	s.called = true
	return s.err
}

func TestLoadManagerStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	first := &stubLoader{name: "first"}
	failing := &stubLoader{name: "failing", err: boom}
	last := &stubLoader{name: "last"}

	err := NewLoadManager(newTestLogger(t), first, failing, last).Load(context.Background(), sampleData())

	assert.ErrorIs(t, err, boom)
	assert.True(t, first.called)
	assert.True(t, failing.called)
	assert.False(t, last.called)
}
