package column

import (
	"encoding/json"
	"sort"
)

// AxisSpec identifies one axis of a column
type AxisSpec struct {
	Name   string            `json:"name"`
	Type   string            `json:"type,omitempty"`
	Domain map[string]string `json:"domain,omitempty"`
}

// Spec is the subset of a column specification needed to derive an anchored ID
type Spec struct {
	Name      string            `json:"name"`
	ValueType ValueType         `json:"valueType"`
	Domain    map[string]string `json:"domain,omitempty"`
	Axes      []AxisSpec        `json:"axesSpec"`
}

// anchorAxisRef is encoded as [anchorID, axisIndex]
type anchorAxisRef struct {
	anchor string
	idx    int
}

func (r anchorAxisRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.anchor, r.idx})
}

type anchorDomainRef struct {
	Anchor string `json:"anc"`
}

// AnchorContext rewrites column specs relative to a set of anchor columns, so that the
// same logical column gets the same ID across datasets sharing the anchors' shape.
type AnchorContext struct {
	axes    map[string]anchorAxisRef
	domains map[string]string
}

// NewAnchorContext indexes the axes and domain entries of each anchor.
// Anchors are visited in sorted ID order; when two anchors share an axis or domain
// entry the later one wins.
func NewAnchorContext(anchors map[string]Spec) *AnchorContext {
	ctx := &AnchorContext{
		axes:    make(map[string]anchorAxisRef),
		domains: make(map[string]string),
	}

	ids := make([]string, 0, len(anchors))
	for id := range anchors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, anchorID := range ids {
		spec := anchors[anchorID]

		for idx, axis := range spec.Axes {
			ctx.axes[axisKey(axis)] = anchorAxisRef{anchor: anchorID, idx: idx}
		}

		for k, v := range spec.Domain {
			ctx.domains[domainKey(k, v)] = anchorID
		}
	}

	return ctx
}

// Derive builds the anchored descriptor for spec
func (c *AnchorContext) Derive(spec Spec) Descriptor {
	d := Descriptor{Name: spec.Name}

	if len(spec.Domain) > 0 {
		d.Domain = make(map[string]json.RawMessage, len(spec.Domain))

		for k, v := range spec.Domain {
			var raw []byte
			if anchorID, ok := c.domains[domainKey(k, v)]; ok {
				raw, _ = json.Marshal(anchorDomainRef{Anchor: anchorID})
			} else {
				raw, _ = json.Marshal(v)
			}
			d.Domain[k] = raw
		}
	}

	d.Axes = make([]json.RawMessage, 0, len(spec.Axes))

	for _, axis := range spec.Axes {
		var raw []byte
		if ref, ok := c.axes[axisKey(axis)]; ok {
			raw, _ = ref.MarshalJSON()
		} else {
			raw, _ = json.Marshal(axis)
		}
		d.Axes = append(d.Axes, raw)
	}

	return d
}

// DeriveID derives and serializes the anchored ID for spec
func (c *AnchorContext) DeriveID(spec Spec) (ID, error) {
	return NewID(c.Derive(spec))
}

func axisKey(axis AxisSpec) string {
	raw, _ := json.Marshal(axis)

	canonical, err := Canonicalize(raw)
	if err != nil {
		return string(raw)
	}

	return string(canonical)
}

func domainKey(key, value string) string {
	raw, _ := json.Marshal([]string{key, value})
	return string(raw)
}
