package compiler

import (
	"math"
	"testing"
	"time"

	"github.com/clonobrowser/annotator/internal/testutil"
	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/clonobrowser/annotator/pkg/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *ScriptCache, func()) {
	t.Helper()

	mr, client := testutil.NewMiniredisClient(t)
	cache := NewScriptCache(client, testutil.CompiledKeyPrefix, time.Hour)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewService(log, cache), cache, mr.Close
}

func TestDigestIsStable(t *testing.T) {
	a, err := Digest(testutil.DefaultTestScript())
	require.NoError(t, err)

	b, err := Digest(testutil.DefaultTestScript())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	other, err := Digest(testutil.SampleScript(true))
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestCompile(t *testing.T) {
	svc, cache, _ := newTestService(t)
	ctx := t.Context()
	script := testutil.DefaultTestScript()

	first, err := svc.Compile(ctx, script)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, first.Script.Steps, 2)
	assert.JSONEq(t, string(testutil.CanonicalScript(script)), string(first.Canonical))

	stored, err := cache.Get(ctx, first.Digest)
	require.NoError(t, err)
	assert.Equal(t, []byte(first.Canonical), stored)

	second, err := svc.Compile(ctx, script)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Canonical, second.Canonical)
}

func TestCompileDropsEmptySteps(t *testing.T) {
	svc, _, _ := newTestService(t)

	script := testutil.NewTestScript(
		testutil.WithStep("Empty", uifilter.NewAnd()),
		testutil.WithStep("Present", uifilter.NewOr(uifilter.NewIsNotNA("a"))),
	)

	compiled, err := svc.Compile(t.Context(), script)
	require.NoError(t, err)
	require.Len(t, compiled.Script.Steps, 1)
	assert.Equal(t, "Present", compiled.Script.Steps[0].Label)
}

func TestCompileRejectsInvalidMode(t *testing.T) {
	svc, _, _ := newTestService(t)

	script := testutil.DefaultTestScript()
	script.Mode = "bySample"

	_, err := svc.Compile(t.Context(), script)
	require.ErrorIs(t, err, filter.ErrInvalidMode)
}

func TestCompileRejectsIncompleteFilter(t *testing.T) {
	svc, _, _ := newTestService(t)

	script := testutil.NewTestScript(
		testutil.WithStep("Broken", uifilter.NewAnd(uifilter.NewNot(nil))),
	)

	_, err := svc.Compile(t.Context(), script)
	require.ErrorIs(t, err, uifilter.ErrMissingFilter)
}

func TestCompileRejectsNonFiniteNumbers(t *testing.T) {
	svc, _, _ := newTestService(t)

	script := testutil.NewTestScript(
		testutil.WithStep("Unbounded", uifilter.NewAnd(uifilter.NewLessThan("a", math.Inf(1)))),
	)

	_, err := svc.Compile(t.Context(), script)
	require.ErrorIs(t, err, uifilter.ErrNonFiniteNumber)
	assert.NotErrorIs(t, err, ErrEncodeScript)
}

func TestCompileIgnoresCacheFailures(t *testing.T) {
	svc, _, closeRedis := newTestService(t)
	closeRedis()

	compiled, err := svc.Compile(t.Context(), testutil.DefaultTestScript())
	require.NoError(t, err)
	assert.False(t, compiled.Cached)
	assert.Len(t, compiled.Script.Steps, 2)
}

func TestCompileReplacesUndecodableCacheEntry(t *testing.T) {
	svc, cache, _ := newTestService(t)
	ctx := t.Context()
	script := testutil.DefaultTestScript()

	digest, err := Digest(script)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, digest, []byte(`{"mode":"nope"}`)))

	compiled, err := svc.Compile(ctx, script)
	require.NoError(t, err)
	assert.False(t, compiled.Cached)

	stored, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, []byte(compiled.Canonical), stored)
}

func TestCompileWithoutCache(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	svc := NewService(log, nil)

	for range 2 {
		compiled, err := svc.Compile(t.Context(), testutil.DefaultTestScript())
		require.NoError(t, err)
		assert.False(t, compiled.Cached)
	}
}

func TestParse(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	script := testutil.DefaultTestScript()
	compiled, err := svc.Compile(ctx, script)
	require.NoError(t, err)

	parsed, err := svc.Parse(ctx, compiled.Script)
	require.NoError(t, err)
	assert.Equal(t, script, parsed)
}

func TestParseErrors(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name    string
		script  filter.Script
		wantErr error
	}{
		{
			name:    "invalid mode",
			script:  filter.Script{Mode: "other"},
			wantErr: filter.ErrInvalidMode,
		},
		{
			name: "unsupported shape",
			script: filter.Script{
				Mode: filter.ModeByClonotype,
				Steps: []filter.Step{{
					Label: "log",
					Filter: &filter.NumericalComparison{
						LHS: &filter.Transform{Transformer: filter.TransformerLog10, Column: "a"},
						RHS: filter.Constant(1),
					},
				}},
			},
			wantErr: uifilter.ErrUnsupportedFilterShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(t.Context(), tt.script)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	for _, twoAxis := range []bool{true, false} {
		compiled, err := svc.Compile(ctx, testutil.SampleScript(twoAxis))
		require.NoError(t, err)

		result := svc.Validate(ctx, compiled.Script)
		assert.Equal(t, twoAxis, result.Valid)
	}
}

func TestDescribe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	compiled, err := svc.Compile(ctx, testutil.DefaultTestScript())
	require.NoError(t, err)

	short := func(id column.ID) string {
		d, err := column.Parse(id)
		require.NoError(t, err)

		return d.Name[len("pl7.app/vdj/"):]
	}

	report, err := svc.Describe(ctx, compiled.Script, short)
	require.NoError(t, err)

	assert.Equal(t, "expanded clones", report.Title)
	assert.True(t, report.Valid)
	assert.Equal(t, validation.ReasonModeWithoutAxisRequirement, report.Reason)
	require.Len(t, report.Steps, 2)

	assert.Equal(t, "Top", report.Steps[0].Label)
	assert.Equal(t, 2, report.Steps[0].Priority)
	assert.Equal(t, "Top 10 by readCount", report.Steps[0].Condition)
	assert.True(t, report.Steps[0].Editable)

	assert.Equal(t, "Motif", report.Steps[1].Label)
	assert.Equal(t, 1, report.Steps[1].Priority)
	assert.Len(t, report.Steps[1].Columns, 2)
}

func TestDescribeUnsupportedStep(t *testing.T) {
	svc, _, _ := newTestService(t)

	script := filter.Script{
		Mode: filter.ModeByClonotype,
		Steps: []filter.Step{{
			Label: "log",
			Filter: &filter.NumericalComparison{
				LHS: &filter.Transform{Transformer: filter.TransformerLog10, Column: "a"},
				RHS: filter.Constant(1),
			},
		}},
	}

	report, err := svc.Describe(t.Context(), script, nil)
	require.NoError(t, err)
	require.Len(t, report.Steps, 1)
	assert.False(t, report.Steps[0].Editable)
	assert.Contains(t, report.Steps[0].Condition, `"log10"`)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Cache: CacheConfig{Enabled: true}}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidCacheTTL)

	cfg.Cache.TTL = time.Minute
	require.NoError(t, cfg.Validate())

	require.NoError(t, (&Config{}).Validate())
}
