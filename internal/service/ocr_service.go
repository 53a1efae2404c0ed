package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"kakeibo/internal/autodict"
	"kakeibo/internal/domain"
	"kakeibo/internal/extract"
	"kakeibo/internal/ocr"
	"kakeibo/internal/port"
	"kakeibo/internal/preprocess"
	"kakeibo/internal/resolver"
)

// OCRInput carries an uploaded receipt image. UseResolver turns on conflict
// resolution for the multi pipeline; when off, conflicted lines keep their
// majority winner and no resolutions are produced.
type OCRInput struct {
	Image       []byte
	ContentType string
	Engines     []domain.EngineName // empty = all registered engines (multi mode)
	UseResolver bool
}

// OCROutput is the result of one OCR pipeline run.
type OCROutput struct {
	Entry       *domain.Entry          `json:"entry"`
	Fields      domain.ExtractedFields `json:"fields"`
	Conflicts   []ocr.ConflictRecord   `json:"conflicts"`
	Resolutions []resolver.Resolution  `json:"resolutions"`
	RawResults  []ocr.EngineResult     `json:"rawResults"`
	Engines     []string               `json:"engines"`
	Fallback    bool                   `json:"fallback"`
	LatencyMS   int64                  `json:"latency_ms"`
}

// OCRService runs receipt images through the OCR pipeline and persists the
// resulting entries.
type OCRService interface {
	RunSingle(ctx context.Context, input *OCRInput) (*OCROutput, error)
	RunMulti(ctx context.Context, input *OCRInput) (*OCROutput, error)
}

type ocrService struct {
	engines      map[domain.EngineName]port.OCREngine
	engineOrder  []domain.EngineName
	resolver     *resolver.Resolver
	preprocessor *preprocess.Client
	entryRepo    port.EntryRepository
	dictRepo     port.AutoDictRepository
	logRepo      port.ResolverLogRepository
	storage      port.ObjectStorage
	bucket       string
	maxFileSize  int64
	singleModel  string
	multiModel   string
}

// OCRServiceParams bundles the dependencies of the OCR pipeline.
type OCRServiceParams struct {
	Engines      []port.OCREngine
	Resolver     *resolver.Resolver
	Preprocessor *preprocess.Client
	EntryRepo    port.EntryRepository
	DictRepo     port.AutoDictRepository
	LogRepo      port.ResolverLogRepository
	Storage      port.ObjectStorage
	Bucket       string
	MaxFileSize  int64 // bytes
	SingleModel  string
	MultiModel   string
}

// NewOCRService creates a new OCRService implementation. Engine order is
// preserved; the first engine is the single-mode default.
func NewOCRService(p OCRServiceParams) OCRService {
	engines := make(map[domain.EngineName]port.OCREngine, len(p.Engines))
	order := make([]domain.EngineName, 0, len(p.Engines))
	for _, e := range p.Engines {
		engines[e.Name()] = e
		order = append(order, e.Name())
	}
	return &ocrService{
		engines:      engines,
		engineOrder:  order,
		resolver:     p.Resolver,
		preprocessor: p.Preprocessor,
		entryRepo:    p.EntryRepo,
		dictRepo:     p.DictRepo,
		logRepo:      p.LogRepo,
		storage:      p.Storage,
		bucket:       p.Bucket,
		maxFileSize:  p.MaxFileSize,
		singleModel:  p.SingleModel,
		multiModel:   p.MultiModel,
	}
}

// RunSingle runs one engine (the requested one, or the first registered) and
// skips aggregation entirely.
func (s *ocrService) RunSingle(ctx context.Context, input *OCRInput) (*OCROutput, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	name := s.engineOrder[0]
	if len(input.Engines) > 0 {
		name = input.Engines[0]
	}
	engine, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEngine, name)
	}

	image := s.preprocessor.Process(ctx, input.Image)
	imageKey, err := s.upload(ctx, image, input.ContentType)
	if err != nil {
		return nil, err
	}

	text, err := engine.Recognize(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("ocrService.RunSingle: engine %s: %w", name, err)
	}

	text = s.loadDict(ctx).Apply(text)
	fields := extract.Parse(text)

	entry := &domain.Entry{
		ID:           uuid.New(),
		ImageKey:     imageKey,
		OCRText:      text,
		StoreName:    fields.StoreName,
		PurchaseDate: fields.PurchaseDate,
		TotalAmount:  fields.TotalAmount,
		ModelVersion: s.singleModel,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("ocrService.RunSingle: %w", err)
	}

	return &OCROutput{
		Entry:   entry,
		Fields:  fields,
		Engines: []string{string(name)},
	}, nil
}

// RunMulti runs the requested engines concurrently, corrects each raw text
// with the auto-dictionary, aggregates line by line, and resolves conflicts
// when the request asks for it. An engine failure degrades to an empty result
// for that engine rather than failing the request.
func (s *ocrService) RunMulti(ctx context.Context, input *OCRInput) (*OCROutput, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	names := input.Engines
	if len(names) == 0 {
		names = s.engineOrder
	}
	selected := make([]port.OCREngine, 0, len(names))
	for _, name := range names {
		engine, ok := s.engines[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEngine, name)
		}
		selected = append(selected, engine)
	}

	image := s.preprocessor.Process(ctx, input.Image)
	imageKey, err := s.upload(ctx, image, input.ContentType)
	if err != nil {
		return nil, err
	}

	// Dictionary corrections apply to each engine's raw text before
	// aggregation, so rules that unify engine variants prevent conflicts
	// instead of patching them up afterwards.
	dict := s.loadDict(ctx)
	results := s.recognizeAll(ctx, selected, image)
	for i := range results {
		results[i].Text = dict.Apply(results[i].Text)
	}
	agg := ocr.Aggregate(results)

	text := agg.AggregatedText
	var resolutions []resolver.Resolution
	var latencyMS int64
	fallback := false
	if input.UseResolver {
		resolved := s.resolver.Resolve(ctx, agg)
		text = resolved.Text
		resolutions = resolved.Resolutions
		latencyMS = resolved.LatencyMS
		fallback = resolved.Fallback
	}

	fields := extract.Parse(text)

	candidates, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("ocrService.RunMulti: marshaling candidates: %w", err)
	}

	entry := &domain.Entry{
		ID:            uuid.New(),
		ImageKey:      imageKey,
		OCRText:       text,
		StoreName:     fields.StoreName,
		PurchaseDate:  fields.PurchaseDate,
		TotalAmount:   fields.TotalAmount,
		ModelVersion:  s.multiModel,
		OCRCandidates: candidates,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("ocrService.RunMulti: %w", err)
	}

	if input.UseResolver && len(agg.Conflicts) > 0 {
		logEntry := &domain.ResolverLog{
			ID:           uuid.New(),
			EntryID:      entry.ID,
			LineCount:    len(agg.Conflicts),
			LatencyMS:    latencyMS,
			FallbackUsed: fallback,
			ModelVersion: s.multiModel,
		}
		if err := s.logRepo.Create(ctx, logEntry); err != nil {
			log.Printf("ocrService: recording resolver log: %v", err)
		}
	}

	return &OCROutput{
		Entry:       entry,
		Fields:      fields,
		Conflicts:   agg.Conflicts,
		Resolutions: resolutions,
		RawResults:  results,
		Engines:     agg.Engines,
		Fallback:    fallback,
		LatencyMS:   latencyMS,
	}, nil
}

func (s *ocrService) validate(input *OCRInput) error {
	if len(input.Image) == 0 {
		return fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if s.maxFileSize > 0 && int64(len(input.Image)) > s.maxFileSize {
		return domain.ErrFileTooLarge
	}
	if _, ok := domain.AllowedImageContentTypes[input.ContentType]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, input.ContentType)
	}
	if len(s.engineOrder) == 0 {
		return fmt.Errorf("ocrService: no engines registered")
	}
	return nil
}

func (s *ocrService) upload(ctx context.Context, image []byte, contentType string) (string, error) {
	ext := "jpg"
	if t, ok := domain.AllowedImageContentTypes[contentType]; ok {
		ext = string(t)
	}
	key := fmt.Sprintf("receipts/%s/%s.%s", time.Now().UTC().Format("2006/01"), uuid.New(), ext)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(image),
		ContentType: contentType,
		Size:        int64(len(image)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return key, nil
}

// recognizeAll fans out to every engine and collects results in engine order.
// A failed engine contributes an empty text so aggregation still sees it.
func (s *ocrService) recognizeAll(ctx context.Context, engines []port.OCREngine, image []byte) []ocr.EngineResult {
	results := make([]ocr.EngineResult, len(engines))
	var wg sync.WaitGroup
	for i, engine := range engines {
		wg.Add(1)
		go func(i int, engine port.OCREngine) {
			defer wg.Done()
			text, err := engine.Recognize(ctx, image)
			if err != nil {
				log.Printf("ocrService: engine %s failed, treating as empty: %v", engine.Name(), err)
				text = ""
			}
			results[i] = ocr.EngineResult{Engine: string(engine.Name()), Text: text}
		}(i, engine)
	}
	wg.Wait()
	return results
}

// loadDict fetches the current auto-dictionary snapshot. A load failure
// degrades to an empty dictionary so corrections are skipped, never fatal.
func (s *ocrService) loadDict(ctx context.Context) autodict.Dict {
	if s.dictRepo == nil {
		return nil
	}
	entries, err := s.dictRepo.List(ctx)
	if err != nil {
		log.Printf("ocrService: loading auto dict, skipping corrections: %v", err)
		return nil
	}
	return autodict.Dict(entries)
}
