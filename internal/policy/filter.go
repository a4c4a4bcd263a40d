// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package policy implements the destination filter consumed as
// locations_allowed(dest) by the route classifier (spec.md §4.2).
// Rules are boolean expressions evaluated against a flattened view of the
// candidate location, so operators can write topology policy ("allow
// parachain <= 2999 except 13") without a Go recompile.
package policy

import (
	"fmt"

	"github.com/hashicorp/go-bexpr"

	"github.com/sankar-boro/xcm-relay/internal/location"
)

// locationView is the flattened, bexpr-tagged projection of a Location that
// rules are evaluated against.
type locationView struct {
	Parents        uint8  `bexpr:"parents"`
	HasParachain   bool   `bexpr:"has_parachain"`
	ParachainID    uint64 `bexpr:"parachain_id"`
	InteriorLength int    `bexpr:"interior_length"`
}

func toView(l location.Location) locationView {
	v := locationView{Parents: l.Parents, InteriorLength: len(l.Interior)}
	if len(l.Interior) > 0 && l.Interior[0].Kind == location.JunctionParachain {
		v.HasParachain = true
		v.ParachainID = l.Interior[0].Index
	}
	return v
}

// Filter evaluates a set of allow-rules against candidate destinations. A
// Filter with no rules allows everything, matching the permissive default a
// freshly-configured topology should have.
type Filter struct {
	evaluators []*bexpr.Evaluator
}

// NewFilter compiles each rule (a bexpr boolean expression over
// parents/has_parachain/parachain_id/interior_length) into an evaluator. A
// destination is allowed if ANY rule matches.
func NewFilter(rules ...string) (*Filter, error) {
	f := &Filter{}
	for _, rule := range rules {
		ev, err := bexpr.CreateEvaluator(rule)
		if err != nil {
			return nil, fmt.Errorf("policy: invalid rule %q: %w", rule, err)
		}
		f.evaluators = append(f.evaluators, ev)
	}
	return f, nil
}

// Allowed implements locations_allowed(dest).
func (f *Filter) Allowed(dest location.Location) bool {
	if len(f.evaluators) == 0 {
		return true
	}
	view := toView(dest)
	for _, ev := range f.evaluators {
		ok, err := ev.Evaluate(view)
		if err == nil && ok {
			return true
		}
	}
	return false
}
