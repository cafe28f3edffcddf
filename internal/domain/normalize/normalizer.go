// Package normalize rewrites the raw result tree produced by cfn-guard into
// the canonical check shape read by the guard package.
//
// The evaluator serializes the same logical failure differently depending on
// how the rule was written. An inline clause produces
//
//	{"Clause": {"Unary": {"check": {"UnResolved": {"value": {"traversed_to": {...}}}}}}}
//
// while a named sub-rule invocation produces
//
//	{"Rule": {"checks": [{"Block": {"unresolved": {"traversed_to": {...}}}}]}}
//
// Both end up as {"resolved": false, "traversed": {"to": {...}}, "messages": {...}}.
// The rewrite runs bottom up: children are rewritten before their parent, so
// each node only has to recognize shapes one level below it.
package normalize

import (
	"github.com/guardlens/guardlens/internal/domain/guard"
	"github.com/guardlens/guardlens/internal/domain/value"
)

// Tree returns the canonical form of raw. raw itself is not modified and
// unrecognized subtrees are copied through unchanged.
func Tree(raw value.Value) value.Value {
	return rewrite(raw, "", 0)
}

// Result normalizes raw and decodes it. The only error is
// guard.ErrMalformedResult for a document that is not a result at all.
func Result(raw value.Value) (*guard.GuardResult, error) {
	return guard.DecodeResult(Tree(raw))
}

func rewrite(v value.Value, key string, depth int) value.Value {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.AsArray()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = rewrite(item, "", depth+1)
		}
		if depth == 1 && key == "not_compliant" {
			return value.FromArray(extractRules(out))
		}
		if key == "checks" {
			out = flattenChecks(out)
		}
		return value.FromArray(out)

	case value.KindObject:
		obj, _ := v.AsObject()
		// The value of a {path, value} record is a copy of the evaluated
		// document and may contain any keys.
		opaque := obj.Has("path")
		out := value.NewObject()
		obj.Each(func(k string, child value.Value) {
			if opaque && k == "value" {
				out.Set(k, child)
				return
			}
			out.Set(k, rewrite(child, k, depth+1))
		})
		if depth == 1 && key == "not_compliant" {
			return value.FromArray(extractRules(out.Values()))
		}
		// A checks mapping is a collection keyed by check, never a node.
		if key == "checks" {
			return value.FromArray(flattenChecks(out.Values()))
		}
		return rewriteNode(out)

	default:
		return v
	}
}

// extractRules reduces each not_compliant entry to its inner rule record.
func extractRules(entries []value.Value) []value.Value {
	rules := make([]value.Value, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.AsObject()
		if !ok {
			rules = append(rules, entry)
			continue
		}
		if _, inner, ok := obj.GetFold("rule"); ok {
			rules = append(rules, inner)
			continue
		}
		if obj.Len() == 1 {
			rules = append(rules, obj.Values()[0])
			continue
		}
		rules = append(rules, entry)
	}
	return rules
}
