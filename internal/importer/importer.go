// Package importer runs one supplier price-list import: decode, resolve the
// parser configuration, extract records, map them to canonical rows and price
// them.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/kosarica/supplier-import/internal/mapper"
	"github.com/kosarica/supplier-import/internal/metrics"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/kosarica/supplier-import/internal/parsers/charset"
	"github.com/kosarica/supplier-import/internal/parsers/delimited"
	"github.com/kosarica/supplier-import/internal/parsers/fixedcolumn"
	"github.com/kosarica/supplier-import/internal/parsers/lines"
	"github.com/kosarica/supplier-import/internal/pricing"
	"github.com/kosarica/supplier-import/internal/suppliers"
	"github.com/kosarica/supplier-import/internal/telemetry"
	"github.com/kosarica/supplier-import/internal/types"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyInput is returned for files without any content
	ErrEmptyInput = errors.New("input is empty")
	// ErrUndecodable is returned when the bytes do not fit the encoding
	ErrUndecodable = errors.New("input cannot be decoded")
)

// loggedErrors is how many row errors a run writes to the log
const loggedErrors = 5

// Options tunes an Importer
type Options struct {
	// Workers above 1 map and price rows concurrently. Output order does not
	// depend on it.
	Workers int
	// ErrorDisplayCap bounds the errors and warnings returned verbatim
	ErrorDisplayCap int
}

// Request describes one import
type Request struct {
	SupplierID string
	FileName   string
	Content    []byte
	Mode       discount.Mode
	// Encoding forces a charset; empty means detect
	Encoding charset.Encoding
}

// Result is the ParseResult plus how it was produced
type Result struct {
	types.ParseResult
	SupplierID   string                    `json:"supplierId"`
	Mode         discount.Mode             `json:"mode"`
	Encoding     charset.Encoding          `json:"encoding"`
	ConfigSource parserconfig.Source       `json:"configSource"`
	ParserConfig parserconfig.ParserConfig `json:"parserConfig"`
}

// Importer is safe for concurrent use
type Importer struct {
	store    suppliers.Store
	resolver *parserconfig.Resolver
	recorder *metrics.Recorder
	rows     metric.Int64Counter
	logger   zerolog.Logger
	opts     Options
}

// New creates an importer. store may be nil when no supplier settings exist.
func New(store suppliers.Store, resolver *parserconfig.Resolver, logger zerolog.Logger, opts Options) *Importer {
	if resolver == nil {
		resolver = parserconfig.NewResolver(nil, logger)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ErrorDisplayCap <= 0 {
		opts.ErrorDisplayCap = pricing.DefaultDisplayCap
	}

	rows, err := telemetry.Meter().Int64Counter("supplier_import.rows",
		metric.WithDescription("Rows processed by import runs"))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create row counter")
		rows = metricnoop.Int64Counter{}
	}

	return &Importer{
		store:    store,
		resolver: resolver,
		recorder: metrics.NewRecorder(),
		rows:     rows,
		logger:   logger,
		opts:     opts,
	}
}

// Import processes the whole file
func (im *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	return im.run(ctx, req, 0)
}

// Preview processes only the first n data lines. The preamble and header
// configured for the supplier are kept so the rows parse as they would in a
// full import.
func (im *Importer) Preview(ctx context.Context, req Request, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("preview needs a positive line count, got %d", n)
	}
	return im.run(ctx, req, n)
}

// Resolve decodes the file and resolves its parser configuration without
// parsing it.
func (im *Importer) Resolve(ctx context.Context, req Request) (parserconfig.Resolution, error) {
	text, _, err := im.decode(req)
	if err != nil {
		return parserconfig.Resolution{}, err
	}
	meta, err := im.metadata(ctx, req.SupplierID)
	if err != nil {
		return parserconfig.Resolution{}, err
	}
	return im.resolve(req, meta, text), nil
}

func (im *Importer) run(ctx context.Context, req Request, previewLines int) (*Result, error) {
	start := time.Now()
	done := im.recorder.RunStarted()
	defer done()

	ctx, span := telemetry.Tracer().Start(ctx, "importer.run", trace.WithAttributes(
		attribute.String("supplier.id", req.SupplierID),
		attribute.String("import.file", req.FileName),
		attribute.String("import.mode", string(req.Mode)),
		attribute.Int("import.preview_lines", previewLines),
	))
	defer span.End()

	log := im.logger.With().
		Str("supplier_id", req.SupplierID).
		Str("file", req.FileName).
		Str("mode", string(req.Mode)).
		Logger()

	text, enc, err := im.decode(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	meta, err := im.metadata(ctx, req.SupplierID)
	if err != nil {
		im.recorder.RecordFailure("store")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := pricing.NewReport(im.opts.ErrorDisplayCap)
	structure := im.discountStructure(meta, report, log)
	resolution := im.resolve(req, meta, text)
	report.Warn(resolution.Notes...)
	cfg := resolution.Config

	if previewLines > 0 {
		n := previewLines
		if cfg.HasHeader() {
			n++
		}
		text = lines.Head(text, cfg.SkipRows(), n)
	}

	log.Info().
		Str("template", cfg.TemplateName).
		Str("config_source", string(resolution.Source)).
		Str("encoding", string(enc)).
		Msg("Import started")

	engine := pricing.NewEngine(req.Mode, structure)
	if m := engine.Mismatch(); m != "" {
		im.recorder.RecordMismatch(string(req.Mode))
		log.Warn().Str("reason", m).Msg("Pricing mode does not match discount structure")
	}

	_, parseSpan := telemetry.Tracer().Start(ctx, "importer.parse")
	records, warnings, parseErr := parse(cfg, text)
	parseSpan.End()
	report.Warn(warnings...)

	if parseErr != nil {
		report.FileError(parseErr.Error())
	} else {
		outcomes := im.process(ctx, records, cfg, engine)
		for _, o := range outcomes {
			if o.err != nil {
				report.RowError(o.err)
				continue
			}
			report.Item(o.row)
		}
	}

	result := &Result{
		ParseResult:  report.Result(),
		SupplierID:   req.SupplierID,
		Mode:         req.Mode,
		Encoding:     enc,
		ConfigSource: resolution.Source,
		ParserConfig: cfg,
	}
	result.RunID = uuid.NewString()

	im.logResult(log, result, report.Errors())
	rejected := result.TotalRows - result.ProcessedRows
	im.recorder.RecordRun(string(req.Mode), string(resolution.Source), time.Since(start),
		result.ProcessedRows, rejected, result.WarningCount)
	im.rows.Add(ctx, int64(result.ProcessedRows), metric.WithAttributes(attribute.String("outcome", "priced")))
	im.rows.Add(ctx, int64(rejected), metric.WithAttributes(attribute.String("outcome", "rejected")))

	span.SetAttributes(
		attribute.String("import.run_id", result.RunID),
		attribute.Int("import.total_rows", result.TotalRows),
		attribute.Int("import.processed_rows", result.ProcessedRows),
		attribute.Int("import.error_count", result.ErrorCount),
	)
	return result, nil
}

func (im *Importer) decode(req Request) (string, charset.Encoding, error) {
	text, enc, err := charset.Decode(req.Content, req.Encoding)
	if err != nil {
		im.recorder.RecordFailure("decode")
		return "", "", fmt.Errorf("%w: %s: %v", ErrUndecodable, req.FileName, err)
	}
	if strings.TrimSpace(text) == "" {
		im.recorder.RecordFailure("empty_input")
		return "", "", ErrEmptyInput
	}
	return text, enc, nil
}

// metadata fetches supplier settings. A supplier without settings is not an
// error; any other store failure aborts the run.
func (im *Importer) metadata(ctx context.Context, supplierID string) (*suppliers.Metadata, error) {
	if im.store == nil {
		return &suppliers.Metadata{SupplierID: supplierID}, nil
	}
	meta, err := im.store.Get(ctx, supplierID)
	if errors.Is(err, suppliers.ErrSupplierNotFound) {
		im.logger.Warn().Str("supplier_id", supplierID).Msg("No settings for supplier, using detection")
		return &suppliers.Metadata{SupplierID: supplierID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load supplier settings: %w", err)
	}
	return meta, nil
}

func (im *Importer) discountStructure(meta *suppliers.Metadata, report *pricing.Report, log zerolog.Logger) discount.Structure {
	if meta.DiscountStructure == nil {
		return nil
	}
	structure, err := discount.Validate(meta.DiscountStructure)
	if err != nil {
		log.Warn().Err(err).Msg("Supplier discount structure is invalid")
		report.Warn(fmt.Sprintf("Supplier discount structure ignored: %v", err))
		return nil
	}
	return structure
}

func (im *Importer) resolve(req Request, meta *suppliers.Metadata, text string) parserconfig.Resolution {
	return im.resolver.Resolve(parserconfig.Input{
		SupplierID:     req.SupplierID,
		ExplicitConfig: meta.ParserConfig,
		TemplateName:   meta.ParserTemplate,
		FileName:       req.FileName,
		Content:        text,
	})
}

// parse extracts raw records with the resolved format
func parse(cfg parserconfig.ParserConfig, text string) ([]types.RawRecord, []string, error) {
	switch c := cfg.Config.(type) {
	case *parserconfig.DelimitedConfig:
		res, err := delimited.Parse(text, delimited.Options{
			Delimiter: rune(c.Delimiter),
			QuoteChar: rune(c.QuoteChar),
			HasHeader: c.HasHeader,
			SkipRows:  c.SkipRows,
		})
		if errors.Is(err, delimited.ErrNoRows) {
			return nil, nil, fmt.Errorf("no data rows found after skipping %d rows", c.SkipRows)
		}
		if err != nil {
			return nil, nil, err
		}
		if len(res.Records) == 0 {
			return nil, res.Warnings, errors.New("no data rows found below the header")
		}
		return res.Records, res.Warnings, nil

	case *parserconfig.FixedColumnConfig:
		res, err := fixedcolumn.Parse(text, c.Columns, c.SkipRows)
		if errors.Is(err, fixedcolumn.ErrNoRows) {
			return nil, nil, fmt.Errorf("no data rows found after skipping %d rows", c.SkipRows)
		}
		if err != nil {
			return nil, nil, err
		}
		return res.Records, res.Warnings, nil
	}
	return nil, nil, fmt.Errorf("unsupported parser format %q", cfg.Format())
}

type outcome struct {
	row types.CanonicalRow
	err error
}

// process maps and prices every record. Outcomes are indexed by record
// position so their order never depends on scheduling.
func (im *Importer) process(ctx context.Context, records []types.RawRecord, cfg parserconfig.ParserConfig, engine *pricing.Engine) []outcome {
	_, span := telemetry.Tracer().Start(ctx, "importer.process", trace.WithAttributes(
		attribute.Int("import.records", len(records)),
		attribute.Int("import.workers", im.opts.Workers),
	))
	defer span.End()

	mapping := cfg.Config.Mapping()
	transforms := cfg.Config.Transforms()
	outcomes := make([]outcome, len(records))

	handle := func(i int) {
		row, err := mapper.MapRow(records[i], mapping, transforms)
		if err != nil {
			outcomes[i] = outcome{err: err}
			return
		}
		priced, err := engine.Resolve(row)
		outcomes[i] = outcome{row: priced, err: err}
	}

	if im.opts.Workers <= 1 || len(records) < 2 {
		for i := range records {
			handle(i)
		}
		return outcomes
	}

	chunk := (len(records) + im.opts.Workers - 1) / im.opts.Workers
	var g errgroup.Group
	g.SetLimit(im.opts.Workers)
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				handle(i)
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (im *Importer) logResult(log zerolog.Logger, result *Result, errs []string) {
	log.Info().
		Str("run_id", result.RunID).
		Int("total_rows", result.TotalRows).
		Int("processed_rows", result.ProcessedRows).
		Int("error_count", result.ErrorCount).
		Int("warning_count", result.WarningCount).
		Msg("Import finished")

	shown := errs
	if len(shown) > loggedErrors {
		shown = shown[:loggedErrors]
	}
	for _, e := range shown {
		log.Warn().Str("run_id", result.RunID).Str("error", e).Msg("Import row error")
	}
	if len(errs) > loggedErrors {
		log.Warn().
			Str("run_id", result.RunID).
			Int("additional_error_count", len(errs)-loggedErrors).
			Msg("Additional import errors not shown")
	}
}
