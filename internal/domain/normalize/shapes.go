package normalize

import (
	"strings"

	"github.com/guardlens/guardlens/internal/domain/value"
)

// shape is the closed set of node layouts the evaluator has been seen to emit.
type shape int

const (
	// shapeUnknown is copied through unchanged.
	shapeUnknown shape = iota
	// shapeRecord is a {path, value} leaf record.
	shapeRecord
	// shapeTraversedTo holds a traversed_to record, the innermost part of an
	// unresolved comparison.
	shapeTraversedTo
	// shapeUnresolved wraps an already rewritten traversed node under an
	// "unresolved" key (any spelling).
	shapeUnresolved
	// shapeResolved holds from/to records, or a single value record, under a
	// "resolved" or "inresolved" key (any spelling).
	shapeResolved
	// shapeWrapsTraversed has a child that carries a traversed key.
	shapeWrapsTraversed
)

var resolvedKeys = []string{"resolved", "inresolved"}

// classify picks the first matching shape in priority order and returns the
// child node the shape is keyed on.
func classify(node *value.Object) (shape, *value.Object) {
	if pv, ok := node.Lookup("path"); ok && pv.Kind() == value.KindString {
		return shapeRecord, nil
	}
	if _, v, ok := node.GetFold("traversed_to"); ok {
		if child, ok := v.AsObject(); ok {
			return shapeTraversedTo, child
		}
	}
	if child, ok := childByKey(node, []string{"unresolved"}, hasTraversed); ok {
		return shapeUnresolved, child
	}
	if child, ok := childByKey(node, resolvedKeys, hasComparison); ok {
		return shapeResolved, child
	}
	var wrapped *value.Object
	node.Each(func(_ string, v value.Value) {
		if wrapped != nil {
			return
		}
		if child, ok := v.AsObject(); ok && hasTraversed(child) {
			wrapped = child
		}
	})
	if wrapped != nil {
		return shapeWrapsTraversed, wrapped
	}
	return shapeUnknown, nil
}

func rewriteNode(node *value.Object) value.Value {
	s, child := classify(node)
	switch s {
	case shapeUnknown, shapeRecord:
		return value.FromObject(node)
	case shapeTraversedTo:
		return fromTraversedTo(child)
	case shapeUnresolved:
		return fromUnresolved(node, child)
	case shapeResolved:
		return fromResolved(node, child)
	case shapeWrapsTraversed:
		return liftTraversed(node, child)
	}
	panic("normalize: unhandled shape")
}

func fromTraversedTo(tt *value.Object) value.Value {
	to := value.NewObject().
		Set("path", field(tt, "path")).
		Set("value", field(tt, "value"))
	traversed := value.NewObject().Set("to", value.FromObject(to))
	if fv, ok := tt.Lookup("from"); ok {
		if from, ok := fv.AsObject(); ok {
			rec := value.NewObject().Set("path", field(from, "path"))
			if v, ok := from.Get("value"); ok {
				rec.Set("value", v)
			}
			traversed.Set("from", value.FromObject(rec))
		}
	}
	out := value.NewObject().Set("traversed", value.FromObject(traversed))
	if m, ok := mergeMessages(field(tt, "messages")); ok {
		out.Set("messages", m)
	}
	return value.FromObject(out)
}

func fromUnresolved(node, child *value.Object) value.Value {
	out := value.NewObject().
		Set("resolved", value.FromBool(false)).
		Set("traversed", field(child, "traversed"))
	if m, ok := mergeMessages(field(child, "messages"), field(node, "messages")); ok {
		out.Set("messages", m)
	}
	return value.FromObject(out)
}

// fromResolved builds the traversed pair for a completed comparison. The
// evaluator puts the location of the actual value in from and the expected
// value in to, so to.path is taken from from.path.
func fromResolved(node, child *value.Object) value.Value {
	var from, expected value.Value
	if fv, ok := child.Lookup("from"); ok {
		from = fv
		expected = expectedValue(field(child, "to"))
	} else {
		// Single-value encoding: both sides come from the same record.
		from = field(child, "value")
		expected = field(recordOf(from), "value")
	}

	to := value.NewObject().
		Set("path", field(recordOf(from), "path")).
		Set("value", expected)
	traversed := value.NewObject().
		Set("from", from).
		Set("to", value.FromObject(to))

	out := value.NewObject().
		Set("resolved", value.FromBool(true)).
		Set("traversed", value.FromObject(traversed))
	if m, ok := mergeMessages(field(child, "messages"), field(node, "messages")); ok {
		out.Set("messages", m)
	}
	return value.FromObject(out)
}

// expectedValue reads the value of a to record. The membership form carries
// a list of records; their values are kept as a list.
func expectedValue(to value.Value) value.Value {
	items, ok := to.AsArray()
	if !ok {
		return field(recordOf(to), "value")
	}
	values := make([]value.Value, 0, len(items))
	for _, item := range items {
		values = append(values, field(recordOf(item), "value"))
	}
	return value.FromArray(values)
}

func liftTraversed(node, child *value.Object) value.Value {
	traversed := field(child, "traversed")
	out := value.NewObject()
	if rv, ok := child.Lookup("resolved"); ok {
		out.Set("resolved", rv)
	}
	out.Set("traversed", traversed)
	m, ok := mergeMessages(
		field(child, "messages"),
		field(recordOf(traversed), "messages"),
		field(node, "messages"),
	)
	if ok {
		out.Set("messages", m)
	}
	return value.FromObject(out)
}

// childByKey returns the first object child whose key case-insensitively
// equals one of names and that satisfies accept.
func childByKey(node *value.Object, names []string, accept func(*value.Object) bool) (*value.Object, bool) {
	var found *value.Object
	node.Each(func(k string, v value.Value) {
		if found != nil || !matchesAny(k, names) {
			return
		}
		if child, ok := v.AsObject(); ok && accept(child) {
			found = child
		}
	})
	return found, found != nil
}

func matchesAny(key string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(key, n) {
			return true
		}
	}
	return false
}

func hasTraversed(o *value.Object) bool {
	v, ok := o.Lookup("traversed")
	return ok && v.Kind() == value.KindObject
}

func hasComparison(o *value.Object) bool {
	if fv, ok := o.Lookup("from"); ok {
		_, hasTo := o.Lookup("to")
		return fv.Kind() == value.KindObject && hasTo
	}
	v, ok := o.Lookup("value")
	return ok && v.Kind() == value.KindObject
}

// field returns key's value, or null when absent.
func field(o *value.Object, key string) value.Value {
	if o == nil {
		return value.Null()
	}
	v, _ := o.Get(key)
	return v
}

func recordOf(v value.Value) *value.Object {
	o, _ := v.AsObject()
	return o
}
