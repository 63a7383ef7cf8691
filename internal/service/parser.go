package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sheetparse/internal/format"
	"sheetparse/internal/logger"
	"sheetparse/internal/metrics"
	"sheetparse/internal/model"
	"sheetparse/internal/storage"
	"sheetparse/internal/tabular"
)

const tracerName = "sheetparse/internal/service"

var (
	openWorkbook = tabular.Open
	extractCSV   = tabular.ExtractCSV
)

// ParserService turns uploaded files into parse envelopes. Every method
// returns an envelope; failures are reported inside it, never as a panic.
type ParserService interface {
	// Parse runs the extraction pipeline on already decoded file bytes.
	Parse(ctx context.Context, data []byte, filename string) *model.Envelope

	// ParseBase64 decodes a base64 transport payload and parses it.
	ParseBase64(ctx context.Context, fileData, filename string) *model.Envelope

	// ParseObject fetches key from object storage and parses it. An empty
	// filename falls back to the key's base name.
	ParseObject(ctx context.Context, key, filename string) *model.Envelope
}

type parserService struct {
	store   storage.Storage
	metrics *metrics.Extraction
	tracer  trace.Tracer
}

// NewParserService constructs a ParserService. store and m may be nil.
func NewParserService(store storage.Storage, m *metrics.Extraction) ParserService {
	return &parserService{
		store:   store,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
}

func (s *parserService) Parse(ctx context.Context, data []byte, filename string) (env *model.Envelope) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "parse", trace.WithAttributes(
		attribute.String("file.name", filename),
		attribute.Int("file.size", len(data)),
	))
	ext := DeclaredExtension(filename)

	var o Outcome
	defer func() {
		if r := recover(); r != nil {
			o = failed(StageInternal, fmt.Errorf("%v", r))
			env = Assemble(o, filename, ext)
		}
		s.finish(ctx, span, env, o, filename, start)
	}()

	switch ext {
	case format.XLSX.String(), format.XLS.String():
		o = s.extractWorkbook(ctx, data, ext)
	case "csv":
		o = s.parseCSV(ctx, data)
	default:
		o = failed(StageUnsupported, fmt.Errorf("%w: %s", tabular.ErrUnsupportedFormat, ext))
	}
	return Assemble(o, filename, ext)
}

func (s *parserService) ParseBase64(ctx context.Context, fileData, filename string) *model.Envelope {
	data, err := DecodePayload(fileData)
	if err != nil {
		return s.reject(ctx, StageTransport, err, filename)
	}
	return s.Parse(ctx, data, filename)
}

func (s *parserService) ParseObject(ctx context.Context, key, filename string) *model.Envelope {
	if filename == "" {
		filename = path.Base(key)
	}
	if s.store == nil {
		return s.reject(ctx, StageStorage, storage.ErrNotConfigured, filename)
	}

	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return s.reject(ctx, StageStorage, fmt.Errorf("fetch object %q: %w", key, err), filename)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return s.reject(ctx, StageStorage, fmt.Errorf("read object %q: %w", key, err), filename)
	}
	return s.Parse(ctx, data, filename)
}

// InvalidRequest builds the envelope for a request that never reached the pipeline.
func InvalidRequest(err error) *model.Envelope {
	return Assemble(failed(StageRequest, err), "", "")
}

func (s *parserService) extractWorkbook(ctx context.Context, data []byte, declared string) Outcome {
	_, span := s.tracer.Start(ctx, "detect")
	det := format.Detect(data)
	span.SetAttributes(
		attribute.String("format.detected", det.Format.String()),
		attribute.String("format.prefix", det.Prefix),
	)
	span.End()

	if det.Format == format.Unrecognized {
		return failed(StageDetection, fmt.Errorf("%w: unrecognized signature %q", tabular.ErrUnsupportedFormat, det.Prefix))
	}
	if det.Format.String() != declared {
		logger.WithContext(ctx).Info("declared extension differs from detected format",
			"stage", "detect",
			"declared", declared,
			"detected", det.Format.String(),
		)
	}

	ctx, span = s.tracer.Start(ctx, "extract")
	defer span.End()

	wb, err := openWorkbook(data, det.Format)
	if err != nil {
		return failed(StageExcel, err)
	}
	defer wb.Close()

	ext := tabular.ExtractAll(ctx, wb)
	span.SetAttributes(
		attribute.Int("sheets.total", ext.SheetCount),
		attribute.Int("sheets.failed", len(ext.Failures)),
	)
	s.metrics.SheetFailed(det.Format.String(), len(ext.Failures))

	return Outcome{
		FileType: det.Format.String(),
		Text:     ext.Text,
		Workbook: &ext,
	}
}

func (s *parserService) parseCSV(ctx context.Context, data []byte) Outcome {
	_, span := s.tracer.Start(ctx, "extract")
	defer span.End()

	t, text, err := extractCSV(data)
	if err != nil {
		return failed(StageCSV, err)
	}
	return Outcome{FileType: "csv", Text: text, Table: t}
}

func (s *parserService) reject(ctx context.Context, stage Stage, err error, filename string) *model.Envelope {
	o := failed(stage, err)
	env := Assemble(o, filename, DeclaredExtension(filename))
	s.metrics.Observe("", env.Method, false, 0)
	logger.WithContext(ctx).Warn("spreadsheet rejected",
		"stage", "request",
		"filename", filename,
		"method", env.Method,
		"error", err,
	)
	return env
}

func (s *parserService) finish(ctx context.Context, span trace.Span, env *model.Envelope, o Outcome, filename string, start time.Time) {
	defer span.End()
	elapsed := time.Since(start)
	s.metrics.Observe(o.FileType, env.Method, env.Success, elapsed)

	log := logger.WithContext(ctx).With(
		"stage", "parse",
		"filename", filename,
		"method", env.Method,
		"duration_ms", elapsed.Milliseconds(),
	)
	if !env.Success {
		span.SetStatus(codes.Error, env.Error)
		log.Warn("spreadsheet parse failed", "error", env.Error)
		return
	}
	span.SetAttributes(attribute.String("file.type", o.FileType))
	log.Info("spreadsheet parsed", "file_type", o.FileType, "text_length", env.TextLength)
}
