package payload

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Pair is one decoded key/value entry.
type Pair struct {
	Key   any
	Value any
}

// Object is a decoded key/value map, ordered by the debug form of its keys.
type Object []Pair

// Format renders one line per pair as "<key> : <value>\n", each prefixed
// with indent tab characters.
func (o Object) Format(indent int) string {
	if indent < 0 {
		indent = 0
	}
	pad := strings.Repeat("\t", indent)

	var b strings.Builder
	for _, p := range o {
		b.WriteString(pad)
		b.WriteString(DebugString(p.Key))
		b.WriteString(" : ")
		b.WriteString(DebugString(p.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// Map returns the object as a JSON friendly map.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, p := range o {
		m[keyString(p.Key)] = jsonValue(p.Value)
	}
	return m
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return DebugString(k)
}

func jsonValue(v any) any {
	if obj, ok := toObject(v); ok {
		return obj.Map()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonValue(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

func toObject(v any) (Object, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	obj := make(Object, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		obj = append(obj, Pair{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	sort.SliceStable(obj, func(i, j int) bool {
		return DebugString(obj[i].Key) < DebugString(obj[j].Key)
	})
	return obj, true
}

// DebugString renders a decoded value in a type revealing form: strings are
// quoted, byte strings are h'..' hex, containers are rendered recursively.
func DebugString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case []byte:
		return "h'" + hex.EncodeToString(x) + "'"
	case ByteKey:
		return "h'" + hex.EncodeToString([]byte(x)) + "'"
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = DebugString(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		obj, _ := toObject(v)
		parts := make([]string, len(obj))
		for i, p := range obj {
			parts[i] = DebugString(p.Key) + ": " + DebugString(p.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return DebugString(rv.Elem().Interface())
	}
	return fmt.Sprintf("%#v", v)
}
