package lint

// GetOption reads a typed option from a rule's option map, falling
// back to def when the key is absent or the wrong type.
func GetOption[T any](opts map[string]any, key string, def T) T {
	if opts == nil {
		return def
	}
	raw, ok := opts[key]
	if !ok {
		return def
	}
	v, ok := raw.(T)
	if !ok {
		return def
	}
	return v
}

// GetIntOption reads an int option, accepting the numeric types YAML
// and JSON decoding produce.
func GetIntOption(opts map[string]any, key string, def int) int {
	if opts == nil {
		return def
	}
	raw, ok := opts[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// GetStringOption reads a string option.
func GetStringOption(opts map[string]any, key string, def string) string {
	return GetOption(opts, key, def)
}

// GetBoolOption reads a bool option.
func GetBoolOption(opts map[string]any, key string, def bool) bool {
	return GetOption(opts, key, def)
}

// GetStringSliceOption reads a string slice option, accepting []any
// elements as decoders commonly produce.
func GetStringSliceOption(opts map[string]any, key string, def []string) []string {
	if opts == nil {
		return def
	}
	raw, ok := opts[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	default:
		return def
	}
}
