package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/LilVoxy/comm_star_schema/ETL/config"
	"github.com/LilVoxy/comm_star_schema/ETL/extractors"
	"github.com/LilVoxy/comm_star_schema/ETL/load"
	"github.com/LilVoxy/comm_star_schema/ETL/models"
	"github.com/LilVoxy/comm_star_schema/ETL/transform"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

type ETLRunner struct {
	config      config.ETLConfig
	logger      *utils.ETLLogger
	sourceDB    *sql.DB
	olapDB      *sql.DB
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	etlLogRepo  models.ETLLogRepository
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner(ctx context.Context, etlConfig config.ETLConfig, logger *utils.ETLLogger) (*ETLRunner, error) {
	logger.Info("Инициализация ETL Runner")

	if err := etlConfig.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	runner := &ETLRunner{
		config:      etlConfig,
		logger:      logger,
		transformer: transform.NewTransformer(logger),
	}

	// Подключаемся к исходной базе, если строки читаются из MySQL
	if etlConfig.SourceType() == config.SourceMySQL {
		db, err := config.ConnectDatabase(etlConfig.Source.DB)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к исходной базе данных: %w", err)
		}
		runner.sourceDB = db
	}

	source, err := extractors.NewSource(etlConfig, runner.sourceDB)
	if err != nil {
		runner.Close()
		return nil, err
	}
	runner.extractor = extractors.NewExtractor(source, logger)

	// Книга Excel выгружается всегда, снимок и MySQL только по конфигурации
	loaders := []load.Loader{load.NewWorkbookLoader(etlConfig.OutputPath, logger)}
	if etlConfig.SnapshotPath != "" {
		loaders = append(loaders, load.NewSnapshotLoader(etlConfig.SnapshotPath, logger))
	}

	runner.etlLogRepo = models.NewMemoryETLLogRepository()
	if etlConfig.EnableOLAPLoad {
		db, err := config.ConnectDatabase(etlConfig.OLAPConfig)
		if err != nil {
			runner.Close()
			return nil, fmt.Errorf("ошибка подключения к OLAP базе данных: %w", err)
		}
		runner.olapDB = db

		repo := models.NewMySQLETLLogRepository(db)
		if err := repo.CreateETLLogTable(ctx); err != nil {
			runner.Close()
			return nil, fmt.Errorf("ошибка при создании таблицы логов ETL: %w", err)
		}
		runner.etlLogRepo = repo
		loaders = append(loaders, load.NewOLAPLoader(db, logger))
	}

	runner.loadManager = load.NewLoadManager(logger, loaders...)
	return runner, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	for _, db := range []*sql.DB{r.sourceDB, r.olapDB} {
		if err := config.CloseDatabase(db); err != nil {
			r.logger.Error("%v", err)
		}
	}
}

// ExecuteETL выполняет полный ETL процесс
func (r *ETLRunner) ExecuteETL(ctx context.Context) error {
	startTime := time.Now()
	runID := uuid.NewString()
	r.logger.LogETLStart(runID)

	// Создаем запись в журнале ETL
	logID, err := r.etlLogRepo.CreateLogEntry(ctx, runID, startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале ETL: %w", err)
	}

	transformedData, err := r.extractAndTransform(ctx, runID)
	if err != nil {
		r.updateETLRunLogFailure(ctx, logID, err.Error())
		return err
	}

	// Фаза выгрузки данных (Load)
	if err := r.loadManager.Load(ctx, transformedData); err != nil {
		r.updateETLRunLogFailure(ctx, logID, fmt.Sprintf("Ошибка в фазе Load: %v", err))
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	stats := models.ETLRunStats{
		RecordsProcessed:   transformedData.Metadata.RecordsProcessed,
		UsersProcessed:     transformedData.Metadata.UsersProcessed,
		BridgeRowsProduced: transformedData.Metadata.BridgeRowsProduced,
	}
	if err := r.etlLogRepo.UpdateLogEntrySuccess(ctx, logID, time.Now(), stats); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}

	r.logger.LogETLComplete(startTime, stats.RecordsProcessed, stats.UsersProcessed, stats.BridgeRowsProduced)
	r.logLastSuccessfulRun(ctx)
	return nil
}

// logLastSuccessfulRun выводит итоговую запись журнала ETL
func (r *ETLRunner) logLastSuccessfulRun(ctx context.Context) {
	run, err := r.etlLogRepo.GetLastSuccessfulRun(ctx)
	if err != nil {
		r.logger.Error("Ошибка при чтении журнала ETL: %v", err)
		return
	}
	if run == nil {
		return
	}
	r.logger.Info("Запись журнала ETL #%d: run_id %s, статус %s, время выполнения %.3f с",
		run.ID, run.RunID, run.Status, run.ExecutionTimeSeconds)
}

// ValidateETL выполняет извлечение и преобразование без выгрузки
func (r *ETLRunner) ValidateETL(ctx context.Context) (*models.TransformedData, error) {
	transformedData, err := r.extractAndTransform(ctx, uuid.NewString())
	if err != nil {
		return nil, err
	}

	for _, table := range transformedData.Tables() {
		r.logger.Info("Таблица %s: %d строк", table.Name, len(table.Rows))
	}
	r.logger.Info("Некорректных raw_content: %d, ненайденных участников: %d",
		transformedData.Metadata.MalformedPayloads, transformedData.Metadata.UnresolvedAttendees)
	return transformedData, nil
}

func (r *ETLRunner) extractAndTransform(ctx context.Context, runID string) (*models.TransformedData, error) {
	// 1. Фаза извлечения данных (Extract)
	extractedData, err := r.extractor.Extract(ctx)
	if err != nil {
		r.logger.Error("Ошибка в фазе Extract: %v", err)
		return nil, fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 2. Фаза трансформации данных (Transform)
	transformedData, err := r.transformer.Transform(ctx, runID, extractedData)
	if err != nil {
		r.logger.Error("Ошибка в фазе Transform: %v", err)
		return nil, fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	return transformedData, nil
}

// updateETLRunLogFailure обновляет запись в журнале ETL при ошибке.
// Запись выполняется и после отмены ctx.
func (r *ETLRunner) updateETLRunLogFailure(ctx context.Context, logID int, errorMessage string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := r.etlLogRepo.UpdateLogEntryFailure(ctx, logID, time.Now(), errorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once или validate")
	configPtr := flag.String("config", "", "Путь к JSON-файлу конфигурации")
	inputPtr := flag.String("input", "", "Путь к исходной таблице (input_path)")
	outputPtr := flag.String("output", "", "Путь к выходной книге (output_path)")
	flag.Parse()

	etlConfig, err := config.LoadConfig(*configPtr)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if *inputPtr != "" {
		etlConfig.InputPath = *inputPtr
	}
	if *outputPtr != "" {
		etlConfig.OutputPath = *outputPtr
	}

	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Запуск ETL Runner в режиме: %s", *modePtr)

	runner, err := NewETLRunner(ctx, etlConfig, logger)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}

	switch *modePtr {
	case "once":
		err = runner.ExecuteETL(ctx)
	case "validate":
		_, err = runner.ValidateETL(ctx)
	default:
		err = fmt.Errorf("неизвестный режим работы %q, доступные режимы: once, validate", *modePtr)
	}
	runner.Close()

	if err != nil {
		logger.Sync()
		log.Fatalf("Ошибка при выполнении ETL: %v", err)
	}

	logger.Info("ETL Runner завершил работу")
}
