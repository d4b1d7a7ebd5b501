package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LilVoxy/comm_star_schema/ETL/load"
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

func newTestRouter(t *testing.T) *mux.Router {
	data := &models.TransformedData{
		CommTypes: []models.CommTypeDimension{{ID: 1, CommType: "meeting"}, {ID: 2, CommType: "call"}},
		Metadata:  models.ETLMetadata{RunID: "run-1", RecordsProcessed: 2},
	}
	snapshot := &load.Snapshot{Metadata: data.Metadata, Tables: data.Tables()}

	router := mux.NewRouter()
	SetupRoutes(router, snapshot, utils.NewETLLoggerFromZap(zaptest.NewLogger(t), true))
	return router
}

func serve(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestListTables(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/api/tables")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var response TablesResponse
	require.NoError(t, utils.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Tables, 9)
	assert.Equal(t, TableSummary{Name: models.TableDimCommType, RowCount: 2}, response.Tables[0])
	assert.Equal(t, TableSummary{Name: models.TableBridgeCommUser, RowCount: 0}, response.Tables[8])
}

func TestGetTable(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/api/tables/dim_comm_type")
	require.Equal(t, http.StatusOK, rec.Code)

	var table models.Table
	require.NoError(t, utils.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, []string{"comm_type", "comm_type_id"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "call", table.Rows[1][0])
}

func TestGetTableEmptyRowsIsArray(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/api/tables/bridge_comm_user")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rows":[]`)
}

func TestGetTableUnknown(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/api/tables/dim_weather")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMetadata(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/api/metadata")
	require.Equal(t, http.StatusOK, rec.Code)

	var metadata models.ETLMetadata
	require.NoError(t, utils.Unmarshal(rec.Body.Bytes(), &metadata))
	assert.Equal(t, "run-1", metadata.RunID)
	assert.Equal(t, 2, metadata.RecordsProcessed)
}

func TestCORSPreflight(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodOptions, "/api/tables")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Body.String())
}
