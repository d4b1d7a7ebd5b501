package load

import (
	"context"
	"fmt"
	"os"

	"github.com/golang/snappy"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Snapshot представляет сохранённый результат запуска ETL
type Snapshot struct {
	Metadata models.ETLMetadata `json:"metadata"`
	Tables   []models.Table     `json:"tables"`
}

// Table возвращает таблицу снимка по имени
func (s *Snapshot) Table(name string) (models.Table, error) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return models.Table{}, fmt.Errorf("%w: %s", models.ErrUnknownTable, name)
}

// SnapshotLoader сохраняет все таблицы в один JSON-файл, сжатый snappy
type SnapshotLoader struct {
	path   string
	logger *utils.ETLLogger
}

// NewSnapshotLoader создает новый экземпляр SnapshotLoader
func NewSnapshotLoader(path string, logger *utils.ETLLogger) *SnapshotLoader {
	return &SnapshotLoader{
		path:   path,
		logger: logger,
	}
}

// Name возвращает описание цели
func (l *SnapshotLoader) Name() string {
	return "snapshot:" + l.path
}

// Load записывает снимок на диск
func (l *SnapshotLoader) Load(_ context.Context, data *models.TransformedData) error {
	snapshot := Snapshot{
		Metadata: data.Metadata,
		Tables:   data.Tables(),
	}

	encoded, err := EncodeSnapshot(&snapshot)
	if err != nil {
		return err
	}

	if err := os.WriteFile(l.path, encoded, 0o644); err != nil {
		return fmt.Errorf("ошибка записи снимка %s: %w", l.path, err)
	}

	l.logger.Info("Снимок %s записан (%d байт)", l.path, len(encoded))
	return nil
}

// EncodeSnapshot сериализует снимок в JSON и сжимает его
func EncodeSnapshot(snapshot *Snapshot) ([]byte, error) {
	raw, err := utils.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации снимка: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

// DecodeSnapshot распаковывает и разбирает снимок
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}

	var snapshot Snapshot
	if err := utils.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("ошибка разбора снимка: %w", err)
	}
	return &snapshot, nil
}

// ReadSnapshot читает снимок с диска
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения снимка %s: %w", path, err)
	}
	return DecodeSnapshot(data)
}
