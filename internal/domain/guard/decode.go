package guard

import (
	"errors"
	"fmt"

	"github.com/guardlens/guardlens/internal/domain/value"
)

// ErrMalformedResult is returned when a document cannot be read as a result
// at all. Shape drift below the top level never produces it.
var ErrMalformedResult = errors.New("malformed guard result")

// DecodeResult reads a normalized result tree into a GuardResult.
func DecodeResult(v value.Value) (*GuardResult, error) {
	root, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrMalformedResult, v.Kind())
	}

	result := &GuardResult{
		Name:         stringField(root, "name"),
		Status:       stringField(root, "status"),
		NotCompliant: []NonCompliantRule{},
	}

	if nc, ok := root.Lookup("not_compliant"); ok {
		entries, ok := entriesOf(nc)
		if !ok {
			return nil, fmt.Errorf("%w: not_compliant is %s", ErrMalformedResult, nc.Kind())
		}
		for _, entry := range entries {
			rule, ok := decodeRule(entry)
			if !ok {
				continue
			}
			result.NotCompliant = append(result.NotCompliant, rule)
		}
	}

	result.NotApplicable = stringList(root, "not_applicable")
	result.Compliant = stringList(root, "compliant")
	return result, nil
}

// DecodeCheck reads one canonical check. It reports false for anything that
// does not carry a string traversed.to.path.
func DecodeCheck(v value.Value) (Check, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Check{}, false
	}
	tv, ok := obj.Lookup("traversed")
	if !ok {
		return Check{}, false
	}
	traversed, ok := tv.AsObject()
	if !ok {
		return Check{}, false
	}
	toVal, ok := traversed.Lookup("to")
	if !ok {
		return Check{}, false
	}
	to, ok := decodeTraversed(toVal)
	if !ok {
		return Check{}, false
	}

	check := Check{Traversed: TraversedPair{To: to}}
	if fromVal, ok := traversed.Lookup("from"); ok {
		if from, ok := decodeTraversed(fromVal); ok {
			check.Traversed.From = &from
		}
	}
	if rv, ok := obj.Lookup("resolved"); ok {
		check.Resolved, _ = rv.AsBool()
	}
	if mv, ok := obj.Lookup("messages"); ok {
		check.Messages = DecodeMessages(mv)
	}
	return check, true
}

// DecodeMessages returns nil when neither message is set.
func DecodeMessages(v value.Value) *Messages {
	obj, ok := v.AsObject()
	if !ok {
		return nil
	}
	m := &Messages{
		CustomMessage: stringField(obj, "custom_message"),
		ErrorMessage:  stringField(obj, "error_message"),
	}
	if m.CustomMessage == "" && m.ErrorMessage == "" {
		return nil
	}
	return m
}

func decodeRule(v value.Value) (NonCompliantRule, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return NonCompliantRule{}, false
	}
	rule := NonCompliantRule{
		Name:   stringField(obj, "name"),
		Checks: []value.Value{},
	}
	if mv, ok := obj.Lookup("messages"); ok {
		rule.Messages = DecodeMessages(mv)
	}
	if cv, ok := obj.Lookup("checks"); ok {
		if checks, ok := entriesOf(cv); ok {
			rule.Checks = append(rule.Checks, checks...)
		}
	}
	return rule, true
}

func decodeTraversed(v value.Value) (Traversed, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Traversed{}, false
	}
	pv, ok := obj.Lookup("path")
	if !ok {
		return Traversed{}, false
	}
	path, ok := pv.AsString()
	if !ok {
		return Traversed{}, false
	}
	val, _ := obj.Get("value")
	return Traversed{Path: path, Value: val}, true
}

// entriesOf accepts both list and mapping encodings of a collection.
func entriesOf(v value.Value) ([]value.Value, bool) {
	if items, ok := v.AsArray(); ok {
		return items, true
	}
	if obj, ok := v.AsObject(); ok {
		return obj.Values(), true
	}
	return nil, false
}

func stringField(obj *value.Object, key string) string {
	v, ok := obj.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

func stringList(obj *value.Object, key string) []string {
	v, ok := obj.Lookup(key)
	if !ok {
		return nil
	}
	items, ok := entriesOf(v)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}
