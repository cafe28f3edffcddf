package normalize

import (
	"github.com/guardlens/guardlens/internal/domain/value"
)

// flattenChecks rewrites a checks array. When any element wraps a named
// sub-rule (an object with its own checks), that sub-rule's checks are
// hoisted into this array. Otherwise single-key wrappers are unwrapped.
func flattenChecks(items []value.Value) []value.Value {
	if !containsNestedChecks(items) {
		return unwrapChecks(items)
	}
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		obj, ok := item.AsObject()
		if !ok || hasTraversed(obj) {
			out = append(out, item)
			continue
		}
		obj.Each(func(_ string, child value.Value) {
			wrapper, ok := child.AsObject()
			if !ok {
				out = append(out, child)
				return
			}
			nested, ok := nestedChecks(wrapper)
			if !ok {
				out = append(out, child)
				return
			}
			for _, check := range nested {
				out = append(out, hoist(check, wrapper))
			}
		})
	}
	return out
}

func containsNestedChecks(items []value.Value) bool {
	for _, item := range items {
		obj, ok := item.AsObject()
		if !ok {
			continue
		}
		nested := false
		obj.Each(func(_ string, child value.Value) {
			if wrapper, ok := child.AsObject(); ok && wrapper.Has("checks") {
				nested = true
			}
		})
		if nested {
			return true
		}
	}
	return false
}

func nestedChecks(wrapper *value.Object) ([]value.Value, bool) {
	v, ok := wrapper.Get("checks")
	if !ok {
		return nil, false
	}
	if items, ok := v.AsArray(); ok {
		return items, true
	}
	if obj, ok := v.AsObject(); ok {
		return obj.Values(), true
	}
	return nil, false
}

// hoist stamps a check lifted out of a named sub-rule with that rule's name.
// Messages merge field by field: each of custom_message and error_message the
// check does not set itself comes from the sub-rule.
func hoist(check value.Value, parent *value.Object) value.Value {
	obj, ok := check.AsObject()
	if !ok {
		return check
	}
	out := value.NewObject()
	obj.Each(func(k string, v value.Value) {
		out.Set(k, v)
	})
	if name, ok := parent.Lookup("name"); ok {
		out.Set("name", name)
	}
	if m, ok := mergeMessages(field(obj, "messages"), field(parent, "messages")); ok {
		out.Set("messages", m)
	}
	return value.FromObject(out)
}

func unwrapChecks(items []value.Value) []value.Value {
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		obj, ok := item.AsObject()
		if ok && !hasTraversed(obj) && obj.Len() == 1 {
			out = append(out, obj.Values()[0])
			continue
		}
		out = append(out, item)
	}
	return out
}

var messageFields = []string{"custom_message", "error_message"}

// mergeMessages builds a messages object field by field, taking each field
// from the first candidate that sets it to a non-empty string. It reports
// false when no candidate sets anything.
func mergeMessages(candidates ...value.Value) (value.Value, bool) {
	merged := value.NewObject()
	for _, name := range messageFields {
		for _, c := range candidates {
			obj, ok := c.AsObject()
			if !ok {
				continue
			}
			v, ok := obj.Lookup(name)
			if !ok {
				continue
			}
			if s, ok := v.AsString(); ok && s != "" {
				merged.Set(name, v)
				break
			}
		}
	}
	if merged.Len() == 0 {
		return value.Null(), false
	}
	return value.FromObject(merged), true
}
