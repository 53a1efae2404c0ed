package main

import (
	"fmt"
	"log"
	"time"

	"kakeibo/internal/autodict"
	"kakeibo/internal/config"
	"kakeibo/internal/domain"
	"kakeibo/internal/handler"
	"kakeibo/internal/ocr"
	"kakeibo/internal/port"
	"kakeibo/internal/preprocess"
	"kakeibo/internal/repository/postgres"
	"kakeibo/internal/resolver"
	"kakeibo/internal/router"
	"kakeibo/internal/service"
	s3storage "kakeibo/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	entryRepo := postgres.NewEntryRepo(db)
	editLogRepo := postgres.NewEditLogRepo(db)
	flagsRepo := postgres.NewUserFlagsRepo(db)
	trainingRepo := postgres.NewTrainingRepo(db)
	resolverLogRepo := postgres.NewResolverLogRepo(db)
	dictRepo := postgres.NewAutoDictRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize OCR engines. Tesseract always runs; remote engines join when
	// configured.
	engines := []port.OCREngine{ocr.NewTesseractEngine(cfg.OCR.TesseractLang)}
	if cfg.OCR.Paddle.URL != "" {
		engines = append(engines, ocr.NewRemoteEngine(
			domain.EnginePaddle, cfg.OCR.Paddle.URL,
			time.Duration(cfg.OCR.Paddle.TimeoutSecs)*time.Second))
	}
	if cfg.OCR.TrOCR.URL != "" {
		engines = append(engines, ocr.NewRemoteEngine(
			domain.EngineTrOCR, cfg.OCR.TrOCR.URL,
			time.Duration(cfg.OCR.TrOCR.TimeoutSecs)*time.Second))
	}

	// Initialize conflict resolver
	res, err := resolver.NewFromConfig(&cfg.Resolver)
	if err != nil {
		return fmt.Errorf("failed to initialize resolver: %w", err)
	}
	log.Printf("resolver backend: %s", cfg.Resolver.Backend)

	// Initialize services
	ocrSvc := service.NewOCRService(service.OCRServiceParams{
		Engines:      engines,
		Resolver:     res,
		Preprocessor: preprocess.New(cfg.Preprocess.URL, time.Duration(cfg.Preprocess.TimeoutSecs)*time.Second),
		EntryRepo:    entryRepo,
		DictRepo:     dictRepo,
		LogRepo:      resolverLogRepo,
		Storage:      s3Client,
		Bucket:       cfg.S3.Bucket,
		MaxFileSize:  cfg.S3.MaxFileSizeMB * 1024 * 1024,
		SingleModel:  cfg.OCR.SingleModelVersion,
		MultiModel:   cfg.OCR.MultiModelVersion,
	})
	entrySvc := service.NewEntryService(entryRepo, editLogRepo, flagsRepo, trainingRepo)
	trainingSvc := service.NewTrainingService(trainingRepo)
	flagSvc := service.NewFlagService(flagsRepo)
	dictSvc := service.NewDictService(editLogRepo, dictRepo, autodict.MinerOptions{
		MinFrequency: cfg.Dict.MinFrequency,
		MaxLen:       cfg.Dict.MaxLen,
		Limit:        cfg.Dict.Limit,
	})

	// Initialize handlers
	ocrH := handler.NewOCRHandler(ocrSvc)
	entryH := handler.NewEntryHandler(entrySvc)
	trainingH := handler.NewTrainingHandler(trainingSvc)
	flagH := handler.NewFlagHandler(flagSvc)
	dictH := handler.NewDictHandler(dictSvc)
	statsH := handler.NewStatsHandler(resolverLogRepo, cfg.Resolver.ModelVersion)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, ocrH, entryH, trainingH, flagH, dictH, statsH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
