package guards

// Kind is the UI-level meaning of a numerical comparison
type Kind int

// Comparison kinds, in classification priority order
const (
	KindNone Kind = iota
	KindTopN
	KindTopCumulativeShare
	KindLessThanColumnOrEqual
	KindLessThanColumn
	KindLessThanOrEqual
	KindLessThan
	KindGreaterThanOrEqual
	KindGreaterThan
)

var kindNames = map[Kind]string{ //nolint:gochecknoglobals // lookup table
	KindNone:                  "none",
	KindTopN:                  "topN",
	KindTopCumulativeShare:    "topCumulativeShare",
	KindLessThanColumnOrEqual: "lessThanColumnOrEqual",
	KindLessThanColumn:        "lessThanColumn",
	KindLessThanOrEqual:       "lessThanOrEqual",
	KindLessThan:              "lessThan",
	KindGreaterThanOrEqual:    "greaterThanOrEqual",
	KindGreaterThan:           "greaterThan",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

type classifier struct {
	kind  Kind
	guard func(any) bool
}

// classifiers are tried in order; variants requiring more fields come first
var classifiers = []classifier{ //nolint:gochecknoglobals // fixed priority order
	{KindTopN, IsTopN},
	{KindTopCumulativeShare, IsTopCumulativeShare},
	{KindLessThanColumnOrEqual, IsLessThanColumnOrEqual},
	{KindLessThanColumn, IsLessThanColumn},
	{KindLessThanOrEqual, IsLessThanOrEqual},
	{KindLessThan, IsLessThan},
	{KindGreaterThanOrEqual, IsGreaterThanOrEqual},
	{KindGreaterThan, IsGreaterThan},
}

// Classify returns the first kind whose guard matches v, or KindNone
func Classify(v any) Kind {
	m, ok := comparison(v)
	if !ok {
		return KindNone
	}

	for _, c := range classifiers {
		if c.guard(m) {
			return c.kind
		}
	}

	return KindNone
}

// Matches returns every kind whose guard matches v, in priority order
func Matches(v any) []Kind {
	m, ok := comparison(v)
	if !ok {
		return nil
	}

	var kinds []Kind

	for _, c := range classifiers {
		if c.guard(m) {
			kinds = append(kinds, c.kind)
		}
	}

	return kinds
}
