package column

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		wantErr  error
		twoAxis  bool
		wantName string
	}{
		{
			name:     "single axis",
			id:       `{"name":"abundance","axes":[{"name":"clonotypeKey"}]}`,
			wantName: "abundance",
		},
		{
			name:     "two axes",
			id:       `{"name":"count","axes":[{"name":"sampleId"},{"name":"clonotypeKey"}]}`,
			wantName: "count",
			twoAxis:  true,
		},
		{
			name:    "sliced reference inherits source axes",
			id:      `{"source":{"name":"count","axes":[["main",0],["main",1]]}}`,
			twoAxis: true,
		},
		{
			name:    "plain string",
			id:      "abundance",
			wantErr: ErrNotDescriptor,
		},
		{
			name:    "descriptor without name",
			id:      `{"axes":[]}`,
			wantErr: ErrEmptyColumnName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, d.Name)
			assert.Equal(t, tt.twoAxis, d.IsTwoAxis())
		})
	}
}

func TestNewIDIsCanonical(t *testing.T) {
	d := Descriptor{
		Name:   "count",
		Domain: map[string]json.RawMessage{"z": json.RawMessage(`"1"`), "a": json.RawMessage(`"2"`)},
		Axes:   []json.RawMessage{json.RawMessage(`{ "type" : "String", "name" : "sampleId" }`)},
	}

	id, err := NewID(d)
	require.NoError(t, err)
	assert.Equal(t,
		ID(`{"axes":[{"name":"sampleId","type":"String"}],"domain":{"a":"2","z":"1"},"name":"count"}`),
		id,
	)

	parsed, err := Parse(id)
	require.NoError(t, err)

	again, err := NewID(parsed)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = NewID(Descriptor{})
	require.ErrorIs(t, err, ErrEmptyColumnName)
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "sorts keys", input: `{"b":1,"a":{"d":2,"c":3}}`, want: `{"a":{"c":3,"d":2},"b":1}`},
		{name: "keeps number literals", input: `[1.50, 1e3]`, want: `[1.50,1e3]`},
		{name: "does not escape html", input: `"<a&b>"`, want: `"<a&b>"`},
		{name: "rejects trailing data", input: `{} {}`, wantErr: true},
		{name: "rejects garbage", input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidJSON)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCanonicalLeavesOpaqueIDs(t *testing.T) {
	assert.Equal(t, ID("abundance"), Canonical("abundance"))
	assert.Equal(t, ID(`{"a":1,"b":2}`), Canonical(`{ "b": 2, "a": 1 }`))
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest([]byte(`{"a":1,"b":2}`)), Digest([]byte(`{"b": 2, "a": 1}`)))
	assert.NotEqual(t, Digest([]byte(`{"a":1}`)), Digest([]byte(`{"a":2}`)))
	assert.NotZero(t, Digest([]byte("not json")))
}

func TestIsTwoAxisValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: false},
		{name: "string", value: "x", want: false},
		{name: "one axis", value: map[string]any{"axes": []any{"a"}}, want: false},
		{name: "two axes", value: map[string]any{"axes": []any{"a", "b"}}, want: true},
		{name: "three axes", value: map[string]any{"axes": []any{"a", "b", "c"}}, want: false},
		{
			name:  "source with two axes",
			value: map[string]any{"source": map[string]any{"axes": []any{"a", "b"}}},
			want:  true,
		},
		{
			name:  "nested source with one axis",
			value: map[string]any{"source": map[string]any{"source": map[string]any{"axes": []any{"a"}}}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTwoAxisValue(tt.value))
		})
	}
}

func TestValueType(t *testing.T) {
	for _, vt := range []ValueType{ValueTypeInt, ValueTypeLong, ValueTypeFloat, ValueTypeDouble} {
		assert.True(t, vt.IsNumeric(), vt)
		assert.False(t, vt.IsString(), vt)
	}

	assert.False(t, ValueTypeString.IsNumeric())
	assert.True(t, ValueTypeString.IsString())
	assert.False(t, ValueType("Bytes").IsNumeric())
}
