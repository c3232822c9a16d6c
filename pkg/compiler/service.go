// Package compiler turns editor scripts into canonical annotation scripts and
// back, with an optional Redis cache of compiled results.
package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/observability"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/clonobrowser/annotator/pkg/validation"
	"github.com/sirupsen/logrus"
)

// Service compiles, parses, validates and describes annotation scripts.
// Implementations are safe for concurrent use.
type Service interface {
	// Compile lowers an editor script into its canonical form
	Compile(ctx context.Context, script uifilter.Script) (*Compiled, error)
	// Parse lifts a canonical script into its editor form
	Parse(ctx context.Context, script filter.Script) (uifilter.Script, error)
	// Validate checks that script can discriminate the records of its mode
	Validate(ctx context.Context, script filter.Script) validation.Result
	// Describe summarizes every step of script in evaluation order
	Describe(ctx context.Context, script filter.Script, label uifilter.LabelFunc) (*Report, error)
}

// Compiled is the result of compiling an editor script
type Compiled struct {
	Script    filter.Script   `json:"script"`
	Canonical json.RawMessage `json:"-"`
	Digest    string          `json:"digest"`
	Cached    bool            `json:"cached"`
}

// Report describes a canonical script
type Report struct {
	Title  string       `json:"title"`
	Mode   filter.Mode  `json:"mode"`
	Valid  bool         `json:"valid"`
	Reason string       `json:"reason"`
	Steps  []StepReport `json:"steps"`
}

// StepReport describes one step. Priority 1 is tried first.
type StepReport struct {
	Index     int         `json:"index"`
	Priority  int         `json:"priority"`
	Label     string      `json:"label"`
	Condition string      `json:"condition"`
	Editable  bool        `json:"editable"`
	Columns   []column.ID `json:"columns"`
	TwoAxis   bool        `json:"twoAxis"`
}

// Compile outcomes recorded in metrics
const (
	statusSuccess      = "success"
	statusCached       = "cached"
	statusInvalid      = "invalid"
	statusUnsupported  = "unsupported"
	statusUnrecognized = "unrecognized"
	statusError        = "error"
)

type service struct {
	log       logrus.FieldLogger
	cache     *ScriptCache
	validator validation.Validator
}

// NewService creates a new compiler service. cache may be nil.
func NewService(log logrus.FieldLogger, cache *ScriptCache) Service {
	return &service{
		log:       log.WithField("service", "compiler"),
		cache:     cache,
		validator: validation.NewValidator(log),
	}
}

// Digest returns the cache key of an editor script: the xxhash of its
// canonical JSON, as 16 hex digits
func Digest(script uifilter.Script) (string, error) {
	raw, err := json.Marshal(script)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDigestScript, err)
	}

	canonical, err := column.Canonicalize(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDigestScript, err)
	}

	return fmt.Sprintf("%016x", column.Digest(canonical)), nil
}

// Compile implements Service
func (s *service) Compile(ctx context.Context, script uifilter.Script) (*Compiled, error) {
	start := time.Now()

	if !script.Mode.Valid() {
		observability.RecordCompile(statusInvalid, time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %q", filter.ErrInvalidMode, script.Mode)
	}

	if err := uifilter.CheckScript(script); err != nil {
		observability.RecordCompile(statusInvalid, time.Since(start).Seconds())
		return nil, err
	}

	digest, err := Digest(script)
	if err != nil {
		observability.RecordCompile(statusError, time.Since(start).Seconds())
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"title":  script.Title,
		"digest": digest,
	})

	if cached := s.lookup(ctx, log, digest); cached != nil {
		cached.Digest = digest
		observability.RecordCompile(statusCached, time.Since(start).Seconds())
		log.Debug("Compiled script served from cache")

		return cached, nil
	}

	compiled := uifilter.CompileScript(script)

	data, err := filter.MarshalScript(compiled)
	if err != nil {
		observability.RecordCompile(statusError, time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %w", ErrEncodeScript, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, digest, data); err != nil {
			observability.RecordError("compiler", "cache_set")
			log.WithError(err).Warn("Failed to cache compiled script")
		}
	}

	observability.RecordCompile(statusSuccess, time.Since(start).Seconds())
	log.WithField("steps", len(compiled.Steps)).Debug("Compiled script")

	return &Compiled{
		Script:    compiled,
		Canonical: data,
		Digest:    digest,
	}, nil
}

// lookup returns the cached result for digest, or nil on a miss. Cache
// failures are logged and treated as misses.
func (s *service) lookup(ctx context.Context, log logrus.FieldLogger, digest string) *Compiled {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, digest)
	if err != nil {
		observability.RecordError("compiler", "cache_get")
		log.WithError(err).Warn("Failed to read compiled script cache")

		return nil
	}

	if data == nil {
		observability.RecordCacheMiss(cacheName)
		return nil
	}

	script, err := filter.UnmarshalScript(data)
	if err != nil {
		observability.RecordError("compiler", "cache_decode")
		log.WithError(err).Warn("Discarding undecodable cached script")

		if err := s.cache.Invalidate(ctx, digest); err != nil {
			log.WithError(err).Debug("Failed to invalidate cached script")
		}

		return nil
	}

	observability.RecordCacheHit(cacheName)

	return &Compiled{
		Script:    script,
		Canonical: data,
		Cached:    true,
	}
}

// Parse implements Service
func (s *service) Parse(_ context.Context, script filter.Script) (uifilter.Script, error) {
	if err := script.Validate(); err != nil {
		observability.RecordParse(statusInvalid)
		return uifilter.Script{}, err
	}

	parsed, err := uifilter.ParseScript(script)
	if err != nil {
		status := parseStatus(err)
		observability.RecordParse(status)

		s.log.WithError(err).WithFields(logrus.Fields{
			"title":  script.Title,
			"status": status,
		}).Debug("Script cannot be opened in the editor")

		return uifilter.Script{}, err
	}

	observability.RecordParse(statusSuccess)

	return parsed, nil
}

func parseStatus(err error) string {
	switch {
	case errors.Is(err, uifilter.ErrUnsupportedFilterShape):
		return statusUnsupported
	case errors.Is(err, uifilter.ErrUnrecognizedFilterTag):
		return statusUnrecognized
	default:
		return statusError
	}
}

// Validate implements Service
func (s *service) Validate(ctx context.Context, script filter.Script) validation.Result {
	return s.validator.Validate(ctx, script)
}

// Describe implements Service. Steps the editor cannot represent are rendered
// as their canonical JSON and flagged as not editable.
func (s *service) Describe(ctx context.Context, script filter.Script, label uifilter.LabelFunc) (*Report, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	result := s.validator.Validate(ctx, script)

	twoAxis := make(map[int]bool, len(result.TwoAxisSteps))
	for _, i := range result.TwoAxisSteps {
		twoAxis[i] = true
	}

	report := &Report{
		Title:  script.Title,
		Mode:   script.Mode,
		Valid:  result.Valid,
		Reason: result.Reason,
		Steps:  make([]StepReport, len(script.Steps)),
	}

	for priority, i := range script.Precedence() {
		step := script.Steps[i]

		condition, editable, err := describeStep(step.Filter, label)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] %q: %w", i, step.Label, err)
		}

		report.Steps[i] = StepReport{
			Index:     i,
			Priority:  priority + 1,
			Label:     step.Label,
			Condition: condition,
			Editable:  editable,
			Columns:   canonicalColumns(filter.Columns(step.Filter)),
			TwoAxis:   twoAxis[i],
		}
	}

	return report, nil
}

func describeStep(f filter.Filter, label uifilter.LabelFunc) (string, bool, error) {
	parsed, err := uifilter.Parse(f)
	if err == nil {
		return uifilter.Describe(parsed, label), true, nil
	}

	if !errors.Is(err, uifilter.ErrUnsupportedFilterShape) {
		return "", false, err
	}

	raw, err := filter.Marshal(f)
	if err != nil {
		return "", false, err
	}

	return string(raw), false, nil
}
