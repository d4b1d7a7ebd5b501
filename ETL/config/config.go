package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// Типы источников данных
const (
	SourceXLSX  = "xlsx"
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Путь к исходной таблице коммуникаций
	InputPath string `json:"input_path"`

	// Путь к выходной книге со звездной схемой
	OutputPath string `json:"output_path"`

	// Настройки источника
	Source SourceConfig `json:"source"`

	// Загрузка звездной схемы в MySQL (опционально)
	EnableOLAPLoad bool           `json:"enable_olap_load"`
	OLAPConfig     DatabaseConfig `json:"olap_config"`

	// Путь к сжатому снимку таблиц; пустая строка отключает снимок
	SnapshotPath string `json:"snapshot_path"`

	// Адрес HTTP API для просмотра снимка
	HTTPAddr string `json:"http_addr"`

	// Включение/отключение логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// SourceConfig описывает, откуда читаются исходные строки
type SourceConfig struct {
	// xlsx, csv или mysql; пустое значение определяется по расширению InputPath
	Type string `json:"type"`

	// Лист книги; пустое значение означает первый лист
	SheetName string `json:"sheet_name"`

	// Таблица и колонка порядка для источника mysql
	Table   string         `json:"table"`
	OrderBy string         `json:"order_by"`
	DB      DatabaseConfig `json:"db"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultOLAPConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "comm_analytics",
	}

	DefaultETLConfig = ETLConfig{
		InputPath:  "raw_data.xlsx",
		OutputPath: "star_schema_output.xlsx",
		Source: SourceConfig{
			Table:   "communications",
			OrderBy: "id",
			DB: DatabaseConfig{
				Driver: "mysql",
				Host:   "localhost",
				Port:   3306,
				User:   "root",
				DBName: "comm_source",
			},
		},
		OLAPConfig:            DefaultOLAPConfig,
		HTTPAddr:              ":8080",
		EnableDetailedLogging: false,
	}
)

// GetConfig возвращает конфигурацию ETL по умолчанию
func GetConfig() ETLConfig {
	return DefaultETLConfig
}

// LoadConfig накладывает JSON-файл конфигурации на значения по умолчанию.
// Пустой путь возвращает конфигурацию по умолчанию.
func LoadConfig(path string) (ETLConfig, error) {
	config := GetConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
	}

	if err := utils.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("ошибка разбора файла конфигурации %s: %w", path, err)
	}

	return config, nil
}

// SourceType возвращает тип источника с учётом расширения входного файла
func (c ETLConfig) SourceType() string {
	if c.Source.Type != "" {
		return strings.ToLower(c.Source.Type)
	}
	switch strings.ToLower(filepath.Ext(c.InputPath)) {
	case ".csv":
		return SourceCSV
	default:
		return SourceXLSX
	}
}

// Validate проверяет согласованность конфигурации
func (c ETLConfig) Validate() error {
	switch c.SourceType() {
	case SourceXLSX, SourceCSV:
		if c.InputPath == "" {
			return fmt.Errorf("не задан input_path")
		}
	case SourceMySQL:
		if c.Source.Table == "" || c.Source.OrderBy == "" {
			return fmt.Errorf("для источника mysql необходимо задать source.table и source.order_by")
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnsupportedSource, c.Source.Type)
	}

	if c.OutputPath == "" {
		return fmt.Errorf("не задан output_path")
	}

	return nil
}
