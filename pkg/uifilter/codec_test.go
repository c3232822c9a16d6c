package uifilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUICodecRoundTrip(t *testing.T) {
	for name, u := range constructed() {
		t.Run(name, func(t *testing.T) {
			raw, err := Marshal(u)
			require.NoError(t, err)

			decoded, err := Unmarshal(raw)
			require.NoError(t, err)
			assert.Equal(t, u, decoded)
		})
	}
}

func TestUIMarshalShape(t *testing.T) {
	raw, err := Marshal(NewAnd(WithMinDiff(NewGreaterThan("x", 5), 1), NewIsNotNA("y")))
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"and","filters":[{"type":"greaterThan","column":"x","lhs":5,"minDiff":1},{"type":"isNotNA","column":"y"}]}`,
		string(raw),
	)

	raw, err = Marshal(&And{})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"and","filters":[]}`, string(raw))
}

func TestUIUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown type", input: `{"type":"between"}`, wantErr: ErrUnrecognizedFilterTag},
		{name: "not without child", input: `{"type":"not"}`, wantErr: ErrMissingFilter},
		{name: "not an object", input: `"isNA"`, wantErr: ErrInvalidFilterObject},
		{name: "nested unknown", input: `{"type":"or","filters":[{"type":"nope"}]}`, wantErr: ErrUnrecognizedFilterTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Marshal(nil)
	require.ErrorIs(t, err, ErrMissingFilter)

	_, err = Marshal(&Not{})
	require.ErrorIs(t, err, ErrMissingFilter)
}

func TestPersistedFiltersSurviveCompile(t *testing.T) {
	for name, u := range constructed() {
		t.Run(name, func(t *testing.T) {
			raw, err := Marshal(u)
			require.NoError(t, err)

			decoded, err := Unmarshal(raw)
			require.NoError(t, err)

			parsed, err := Parse(Compile(decoded))
			require.NoError(t, err)
			assert.Equal(t, decoded, parsed)
		})
	}
}

func TestUnmarshalFoldsNegations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Filter
	}{
		{
			name:  "not isNA",
			input: `{"type":"not","filter":{"type":"isNA","column":"c"}}`,
			want:  NewIsNotNA("c"),
		},
		{
			name:  "not patternEquals",
			input: `{"type":"not","filter":{"type":"patternEquals","column":"c","value":"CASS"}}`,
			want:  NewPatternNotEquals("c", "CASS"),
		},
		{
			name:  "not patternContainSubsequence",
			input: `{"type":"not","filter":{"type":"patternContainSubsequence","column":"c","value":"GG"}}`,
			want:  NewPatternNotContainSubsequence("c", "GG"),
		},
		{
			name:  "not isNotNA stays negated",
			input: `{"type":"not","filter":{"type":"isNotNA","column":"c"}}`,
			want:  &Not{Filter: NewIsNotNA("c")},
		},
		{
			name:  "nested in and",
			input: `{"type":"and","filters":[{"type":"not","filter":{"type":"isNA","column":"c"}}]}`,
			want:  NewAnd(NewIsNotNA("c")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Unmarshal([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, decoded)

			parsed, err := Parse(Compile(decoded))
			require.NoError(t, err)
			assert.Equal(t, decoded, parsed)
		})
	}
}

func TestUnmarshalTopNDirection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "missing means top", input: `{"type":"topN","column":"c","n":5}`, want: true},
		{name: "explicit top", input: `{"type":"topN","column":"c","n":5,"descending":true}`, want: true},
		{name: "explicit bottom", input: `{"type":"topN","column":"c","n":5,"descending":false}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Unmarshal([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, NewTopN("c", 5, tt.want), decoded)
		})
	}
}
