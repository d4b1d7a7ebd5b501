// main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/comm_star_schema/ETL/config"
	"github.com/LilVoxy/comm_star_schema/ETL/load"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
	"github.com/LilVoxy/comm_star_schema/routes"
)

func main() {
	configPtr := flag.String("config", "", "Путь к JSON-файлу конфигурации")
	snapshotPtr := flag.String("snapshot", "", "Путь к снимку звездной схемы (snapshot_path)")
	addrPtr := flag.String("addr", "", "Адрес HTTP сервера (http_addr)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPtr)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if *snapshotPtr != "" {
		cfg.SnapshotPath = *snapshotPtr
	}
	if *addrPtr != "" {
		cfg.HTTPAddr = *addrPtr
	}

	logger := utils.NewETLLogger(cfg.EnableDetailedLogging)
	defer logger.Sync()

	if cfg.SnapshotPath == "" {
		log.Fatalf("Не указан путь к снимку: задайте -snapshot или snapshot_path")
	}

	logger.Info("Запуск сервера...")

	snapshot, err := load.ReadSnapshot(cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить снимок: %v", err)
	}
	logger.Info("Загружен снимок запуска %s: %d таблиц", snapshot.Metadata.RunID, len(snapshot.Tables))

	// Создаем маршрутизатор
	router := mux.NewRouter()
	routes.SetupRoutes(router, snapshot, logger)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Info("Сервер запущен на %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	logger.Info("Получен сигнал завершения, останавливаем сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Ошибка остановки сервера: %v", err)
	}

	logger.Info("Сервер остановлен")
}
