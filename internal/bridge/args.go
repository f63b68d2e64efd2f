package bridge

// Signal argument coercion. Payloads that crossed the transport arrive as
// JSON values (numbers become float64, objects become map[string]any);
// payloads raised on the local bus are concrete Go types. Handlers accept
// both.

func coerceInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

func coerceInt(v any) (int, bool) {
	n, ok := coerceInt64(v)
	return int(n), ok
}

func argString(args []any, i int) string {
	if i >= len(args) {
		return ""
	}
	s, _ := args[i].(string)
	return s
}

func argInt64(args []any, i int) (int64, bool) {
	if i >= len(args) {
		return 0, false
	}
	return coerceInt64(args[i])
}

func argMap(args []any, i int) (map[string]any, bool) {
	if i >= len(args) {
		return nil, false
	}
	m, ok := args[i].(map[string]any)
	return m, ok
}
