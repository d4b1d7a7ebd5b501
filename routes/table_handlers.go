// routes/table_handlers.go
package routes

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/comm_star_schema/ETL/load"
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// TableSummary структура краткой информации о таблице
type TableSummary struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// TablesResponse структура ответа API для списка таблиц
type TablesResponse struct {
	Tables []TableSummary `json:"tables"`
}

// TableHandlers обслуживает запросы к снимку звездной схемы.
// Снимок не изменяется после запуска сервера.
type TableHandlers struct {
	snapshot *load.Snapshot
	logger   *utils.ETLLogger
}

// NewTableHandlers создает новый экземпляр TableHandlers
func NewTableHandlers(snapshot *load.Snapshot, logger *utils.ETLLogger) *TableHandlers {
	return &TableHandlers{
		snapshot: snapshot,
		logger:   logger,
	}
}

// ListTables возвращает имена таблиц и количество строк в порядке выгрузки
func (h *TableHandlers) ListTables(w http.ResponseWriter, r *http.Request) {
	response := TablesResponse{Tables: make([]TableSummary, 0, len(h.snapshot.Tables))}
	for _, t := range h.snapshot.Tables {
		response.Tables = append(response.Tables, TableSummary{Name: t.Name, RowCount: len(t.Rows)})
	}

	h.writeJSON(w, response)
}

// GetTable возвращает колонки и строки одной таблицы
func (h *TableHandlers) GetTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	table, err := h.snapshot.Table(name)
	if errors.Is(err, models.ErrUnknownTable) {
		http.Error(w, "Таблица не найдена", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Ошибка при получении таблицы %s: %v", name, err)
		http.Error(w, "Ошибка при получении таблицы", http.StatusInternalServerError)
		return
	}

	if table.Rows == nil {
		table.Rows = [][]interface{}{}
	}
	h.writeJSON(w, table)
	h.logger.Debug("Отправлена таблица %s (%d строк)", name, len(table.Rows))
}

// GetMetadata возвращает метаданные запуска, создавшего снимок
func (h *TableHandlers) GetMetadata(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.snapshot.Metadata)
}

func (h *TableHandlers) writeJSON(w http.ResponseWriter, v interface{}) {
	// Устанавливаем заголовок для JSON
	w.Header().Set("Content-Type", "application/json")

	if err := utils.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Ошибка при кодировании JSON: %v", err)
		http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
	}
}
