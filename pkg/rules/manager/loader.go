package manager

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/fpl/validator"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/source"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// MaxFileSize bounds a single document in bytes.
	MaxFileSize int64
	// Strict runs static validation on every condition at load time.
	Strict bool
}

// DefaultLoaderConfig returns the loader defaults.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{MaxFileSize: config.DefaultRulesMaxFileSize}
}

// Loader turns source documents into a rule set.
type Loader struct {
	config LoaderConfig
}

// NewLoader creates a loader.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = config.DefaultRulesMaxFileSize
	}
	return &Loader{config: cfg}
}

// LoadResult is a rule set built from a source.
type LoadResult struct {
	RuleSet   *engine.RuleSet
	Documents int
	Duration  time.Duration
}

// Load reads every document of src and builds a rule set with the rules in
// document order. All documents are checked; the error lists each failing
// one and no rule set is returned.
func (l *Loader) Load(ctx context.Context, src source.Source) (*LoadResult, error) {
	start := time.Now()

	docs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules from %s: %w", src, err)
	}

	var rules []engine.Rule
	errs := &ErrorList{}
	for _, doc := range docs {
		decoded, err := l.Decode(doc)
		if err != nil {
			errs.Add(err)
			continue
		}
		rules = append(rules, decoded...)
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}

	return &LoadResult{
		RuleSet:   engine.NewRuleSet(rules...),
		Documents: len(docs),
		Duration:  time.Since(start),
	}, nil
}

// Decode checks and decodes a single document.
func (l *Loader) Decode(doc source.Document) ([]engine.Rule, error) {
	if size := int64(len(doc.Data)); size > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: doc.Name,
			Message: fmt.Sprintf("file size %s exceeds maximum %s",
				humanize.IBytes(uint64(size)), humanize.IBytes(uint64(l.config.MaxFileSize))),
		}
	}
	if !utf8.Valid(doc.Data) {
		return nil, &LoadError{FilePath: doc.Name, Message: "file contains invalid UTF-8 encoding"}
	}

	rules, err := source.Decode(doc.Name, doc.Data)
	if err != nil {
		return nil, err
	}

	if l.config.Strict {
		v := validator.New()
		for _, r := range rules {
			if err := v.Validate(r.Condition); err != nil {
				return nil, &source.DecodeError{Source: r.Source, Index: r.Index, Line: r.Line, Err: err}
			}
		}
	}
	return rules, nil
}
