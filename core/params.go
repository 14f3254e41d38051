package core

import "fmt"

// Params is a small parameter bag: callers pull out the options they
// recognize with a default, and a final Done() call rejects anything
// left unconsumed. This enforces "unknown keys are an error" without
// every caller hand-rolling the bookkeeping.
type Params struct {
	op       string
	values   map[string]any
	consumed map[string]bool
}

// NewParams wraps a raw option map for operation op (used in error
// messages, e.g. "CreateIndex" or "SetQueryTimeParams").
func NewParams(op string, values map[string]any) *Params {
	return &Params{op: op, values: values, consumed: make(map[string]bool, len(values))}
}

// GetUintOptional returns the uint value of key, or def if key is absent.
func (p *Params) GetUintOptional(key string, def uint) (uint, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	p.consumed[key] = true
	switch n := v.(type) {
	case uint:
		return n, nil
	case int:
		if n < 0 {
			return 0, Errorf(KindConfiguration, p.op, "parameter %q must not be negative, got %d", key, n)
		}
		return uint(n), nil
	default:
		return 0, Errorf(KindConfiguration, p.op, "parameter %q must be an unsigned integer, got %T", key, v)
	}
}

// GetBoolOptional returns the bool value of key, or def if key is absent.
func (p *Params) GetBoolOptional(key string, def bool) (bool, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	p.consumed[key] = true
	b, ok := v.(bool)
	if !ok {
		return false, Errorf(KindConfiguration, p.op, "parameter %q must be a bool, got %T", key, v)
	}
	return b, nil
}

// GetStringOptional returns the string value of key, or def if key is absent.
func (p *Params) GetStringOptional(key string, def string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	p.consumed[key] = true
	s, ok := v.(string)
	if !ok {
		return "", Errorf(KindConfiguration, p.op, "parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// Done reports a configuration error if any key in the bag was never
// fetched by a Get*Optional call, matching AnyParamManager::CheckUnused.
func (p *Params) Done() error {
	var unused []string
	for key := range p.values {
		if !p.consumed[key] {
			unused = append(unused, key)
		}
	}
	if len(unused) > 0 {
		return Errorf(KindConfiguration, p.op, "unrecognized parameter(s): %v", unused)
	}
	return nil
}

// AlgoType selects between the two query-time traversal algorithms: the
// two-heap "old" traversal and the sorted-array "v1merge" traversal.
type AlgoType int

const (
	// AlgoOld is the two-heap best-first traversal.
	AlgoOld AlgoType = iota
	// AlgoV1Merge is the sorted-array, merge-based traversal.
	AlgoV1Merge
)

func (a AlgoType) String() string {
	switch a {
	case AlgoOld:
		return "old"
	case AlgoV1Merge:
		return "v1merge"
	default:
		return "unknown"
	}
}

// ParseAlgoType maps the "old"/"v1merge" parameter strings to an AlgoType.
func ParseAlgoType(s string) (AlgoType, error) {
	switch s {
	case "old":
		return AlgoOld, nil
	case "v1merge":
		return AlgoV1Merge, nil
	default:
		return 0, fmt.Errorf("algoType should be one of the following: old, v1merge, got %q", s)
	}
}
