package parserconfig

import (
	"fmt"
	"strings"

	"github.com/kosarica/supplier-import/internal/aliases"
	"github.com/kosarica/supplier-import/internal/parsers/delimited"
	"github.com/kosarica/supplier-import/internal/parsers/lines"
	"github.com/rs/zerolog"
)

// Source tells which resolution step produced the configuration
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceTemplate Source = "template"
	SourceDetected Source = "detected"
	SourceFallback Source = "fallback"
)

// Input carries what the resolver knows about one import
type Input struct {
	SupplierID     string
	ExplicitConfig []byte
	TemplateName   string
	FileName       string
	Content        string
}

// Resolution is the outcome of Resolve. Notes are operator facing messages
// about steps that were skipped or completed automatically.
type Resolution struct {
	Config    ParserConfig
	Source    Source
	Detection *Detection
	Notes     []string
}

// Resolver picks a parser configuration in priority order: the supplier's
// explicit config, its named template, content detection, then generic_csv.
type Resolver struct {
	registry *Registry
	logger   zerolog.Logger
}

func NewResolver(registry *Registry, logger zerolog.Logger) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Resolver{registry: registry, logger: logger}
}

// Registry returns the templates the resolver draws from
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve never fails. Unusable explicit configs and unknown templates are
// logged and skipped.
func (r *Resolver) Resolve(in Input) Resolution {
	log := r.logger.With().Str("supplier_id", in.SupplierID).Str("file", in.FileName).Logger()
	var res Resolution

	if len(in.ExplicitConfig) > 0 {
		cfg, err := Decode(in.ExplicitConfig)
		if err == nil {
			res.Config, res.Source = cfg, SourceExplicit
			r.complete(&res, in.Content)
			return res
		}
		log.Warn().Err(err).Msg("Supplier parser config unusable, trying template")
		res.Notes = append(res.Notes, fmt.Sprintf("Supplier parser config ignored: %v", err))
	}

	if name := strings.TrimSpace(in.TemplateName); name != "" {
		if cfg, ok := r.registry.Lookup(name); ok {
			res.Config, res.Source = cfg, SourceTemplate
			r.complete(&res, in.Content)
			return res
		}
		log.Warn().Str("template", name).Msg("Unknown parser template, detecting from content")
		res.Notes = append(res.Notes, fmt.Sprintf("Unknown parser template %q ignored", name))
	}

	if d, ok := Detect(in.FileName, in.Content); ok {
		if cfg, found := r.registry.Lookup(d.TemplateName); found {
			res.Config, res.Source, res.Detection = cfg, SourceDetected, &d
			log.Debug().Str("template", d.TemplateName).Str("reason", d.Reason).Msg("Parser config detected")
			r.complete(&res, in.Content)
			return res
		}
	}

	cfg, _ := r.registry.Lookup(TemplateGenericCSV)
	if cfg.Config == nil {
		cfg = delimitedTemplate(TemplateGenericCSV, ',')
	}
	res.Config, res.Source = cfg, SourceFallback
	log.Warn().Msg("Could not detect file layout, using generic CSV")
	r.complete(&res, in.Content)
	return res
}

// complete fills an empty delimited column mapping from the header using the
// field alias table.
func (r *Resolver) complete(res *Resolution, content string) {
	d, ok := res.Config.Config.(*DelimitedConfig)
	if !ok || len(d.ColumnMapping) > 0 {
		return
	}
	if !d.HasHeader {
		res.Notes = append(res.Notes, "No column mapping configured and the file has no header")
		return
	}

	first := lines.NonBlank(content, d.SkipRows)
	if len(first) == 0 {
		return
	}
	quote := rune(d.QuoteChar)
	if quote == 0 {
		quote = '"'
	}
	headers := delimited.SplitLine(first[0], rune(d.Delimiter), quote)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	d.ColumnMapping = aliases.SuggestMapping(headers)
	if !HasIdentifier(d.ColumnMapping) {
		res.Notes = append(res.Notes, "No identifier column recognised in header")
	}
	// unknown headers are kept under their own name and end up in Extra
	for _, h := range aliases.Unmapped(headers) {
		if _, taken := d.ColumnMapping[h]; h != "" && !taken {
			d.ColumnMapping[h] = h
		}
	}
}
