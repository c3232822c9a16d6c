package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorContextDerive(t *testing.T) {
	anchors := map[string]Spec{
		"main": {
			Name:      "abundance",
			ValueType: ValueTypeDouble,
			Domain:    map[string]string{"pl7.app/blockId": "b1"},
			Axes: []AxisSpec{
				{Name: "pl7.app/sampleId", Type: "String"},
				{Name: "pl7.app/clonotypeKey", Type: "String"},
			},
		},
	}

	ctx := NewAnchorContext(anchors)

	id, err := ctx.DeriveID(Spec{
		Name:      "pl7.app/vdj/sequence",
		ValueType: ValueTypeString,
		Domain:    map[string]string{"pl7.app/blockId": "b1", "pl7.app/feature": "CDR3"},
		Axes: []AxisSpec{
			{Name: "pl7.app/clonotypeKey", Type: "String"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t,
		ID(`{"axes":[["main",1]],"domain":{"pl7.app/blockId":{"anc":"main"},"pl7.app/feature":"CDR3"},"name":"pl7.app/vdj/sequence"}`),
		id,
	)

	d, err := Parse(id)
	require.NoError(t, err)
	assert.False(t, d.IsTwoAxis())
}

func TestAnchorContextKeepsUnknownAxes(t *testing.T) {
	ctx := NewAnchorContext(nil)

	d := ctx.Derive(Spec{
		Name: "count",
		Axes: []AxisSpec{{Name: "sampleId"}, {Name: "clonotypeKey"}},
	})

	require.Len(t, d.Axes, 2)
	assert.JSONEq(t, `{"name":"sampleId"}`, string(d.Axes[0]))
	assert.True(t, d.IsTwoAxis())
}

func TestAnchorContextLaterAnchorWins(t *testing.T) {
	shared := []AxisSpec{{Name: "clonotypeKey"}}

	ctx := NewAnchorContext(map[string]Spec{
		"b": {Name: "y", Axes: shared},
		"a": {Name: "x", Axes: shared},
	})

	d := ctx.Derive(Spec{Name: "z", Axes: shared})

	require.Len(t, d.Axes, 1)
	assert.JSONEq(t, `["b",0]`, string(d.Axes[0]))
}
