package maps

import (
	"fmt"

	"github.com/spf13/cast"
)

// ToParamsAndPrepare converts in to Params with all keys lower cased. A nil
// in gives an empty Params.
func ToParamsAndPrepare(in any) (Params, bool) {
	if in == nil {
		return Params{}, true
	}
	var m Params
	switch vv := in.(type) {
	case Params:
		m = vv
	case map[string]string:
		m = make(Params, len(vv))
		for k, v := range vv {
			m[k] = v
		}
	default:
		sm, err := cast.ToStringMapE(in)
		if err != nil {
			return nil, false
		}
		m = sm
	}
	PrepareParams(m)
	return m, true
}

// MustToParamsAndPrepare calls ToParamsAndPrepare and panics if it fails.
func MustToParamsAndPrepare(in any) Params {
	if p, ok := ToParamsAndPrepare(in); ok {
		return p
	}
	panic(fmt.Sprintf("cannot convert %T to maps.Params", in))
}
