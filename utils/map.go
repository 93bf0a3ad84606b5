package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// KeyValsToString formats slog-style keyvals into a single bracketed string.
// Example: KeyValsToString("foo", 1, "bar", true) => "[foo=1 bar=true]".
// If an odd number of values is provided, the last value is ignored.
func KeyValsToString(kv []any) string {
	if len(kv) < 2 {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i := range len(kv) / 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		key := kv[i*2]
		keyStr, ok := key.(string)
		if !ok {
			keyStr = fmt.Sprintf("%v", key)
		}
		fmt.Fprintf(&sb, "%s=%v", keyStr, kv[i*2+1])
	}
	sb.WriteByte(']')
	return sb.String()
}

// OrderedMapToString formats an ordered map in insertion order, in the same bracketed form as
// KeyValsToString.
func OrderedMapToString(m *orderedmap.OrderedMap[string, any]) string {
	if m == nil || m.Len() == 0 {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for el := m.Front(); el != nil; el = el.Next() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%s=%v", el.Key, el.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
