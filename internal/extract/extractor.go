package extract

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/legal"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

// Input labels for telemetry, one per way a text reaches the pipeline.
const (
	InputAPI   = "api"
	InputFile  = "file"
	InputBatch = "batch"
	InputCLI   = "cli"
)

// Config holds extraction pipeline settings.
type Config struct {
	// WitnessHeuristic enables the stoplist-based witness extractor. It is
	// tuned to one corpus and misclassifies elsewhere, so it can be turned
	// off without touching any other extractor.
	WitnessHeuristic bool
}

// Extractor runs every field extractor over a raw FIR text and assembles
// the structured record, legal mapping included. It is stateless across
// invocations and safe for concurrent use.
type Extractor struct {
	keywords  *keywordMatcher
	logger    logger.Logger
	telemetry *telemetry.Provider
	cfg       Config
}

// New creates an extraction pipeline. telemetry may be nil (CLI use).
func New(log logger.Logger, tp *telemetry.Provider, cfg Config) *Extractor {
	e := &Extractor{
		keywords:  newKeywordMatcher(),
		logger:    log,
		telemetry: tp,
		cfg:       cfg,
	}

	log.Info("extraction pipeline initialized",
		logger.Int("trigger_keywords", len(e.keywords.keywords)),
		logger.Bool("witness_heuristic", cfg.WitnessHeuristic))

	return e
}

// Extract runs the full pipeline over rawText. input is the telemetry
// label for where the text came from. Extraction never fails: pattern-free
// or empty input yields an all-default record.
func (e *Extractor) Extract(ctx context.Context, input, rawText string) *domain.FIRRecord {
	start := time.Now()

	var span trace.Span
	if e.telemetry != nil {
		ctx, span = e.telemetry.Tracer.Start(ctx, "extract",
			trace.WithAttributes(attribute.String("input", input)))
		defer span.End()
	}

	text := Normalize(rawText)
	hits := e.keywords.Hits(text)

	rec := domain.NewFIRRecord()
	rec.Complainant = extractComplainant(text)
	rec.DateTime = extractDateTime(text)
	rec.Place = extractPlace(text)
	rec.Accused = extractAccused(text, hits[unknownAssailantKeyword])
	rec.Vehicles = extractVehicles(text)
	rec.WeaponsUsed = evalKeywordRules(hits, weaponRules)
	rec.Offences = offenceTags(hits)
	rec.PropertyLoss = extractPropertyLoss(text)
	rec.Threats = evalKeywordRules(hits, threatRules)
	if e.cfg.WitnessHeuristic {
		rec.Witnesses = extractWitnesses(text)
	}
	rec.Impact = impactStatement(hits)

	// Offences must be final before mapping.
	rec.LegalMapping = legal.Map(rec.Offences)

	duration := time.Since(start)
	if e.telemetry != nil {
		e.telemetry.RecordExtraction(ctx, input, duration, len(hits), rec.Offences)
		if isEmptyRecord(rec) {
			e.telemetry.RecordEmpty(ctx)
		}
	}

	e.logger.Debug("extraction complete",
		logger.String("input", input),
		logger.Int("accused", len(rec.Accused)),
		logger.Int("offences", len(rec.Offences)),
		logger.Strings("codes", rec.LegalMapping.Codes()),
		logger.Duration("duration", duration))

	return rec
}

// IsBlank reports whether a raw text is empty or whitespace-only. Callers
// must reject blank input before invoking Extract; the pipeline itself
// still tolerates it.
func IsBlank(rawText string) bool {
	return strings.TrimSpace(rawText) == ""
}

// isEmptyRecord reports whether no pattern matched at all.
func isEmptyRecord(r *domain.FIRRecord) bool {
	return r.Complainant.IsEmpty() &&
		r.DateTime == "" &&
		r.Place == domain.PlaceNotMentioned &&
		len(r.Accused) == 0 &&
		len(r.Vehicles) == 0 &&
		len(r.WeaponsUsed) == 0 &&
		len(r.Offences) == 0 &&
		len(r.PropertyLoss) == 0 &&
		len(r.Threats) == 0 &&
		len(r.Witnesses) == 0 &&
		r.Impact == ""
}
