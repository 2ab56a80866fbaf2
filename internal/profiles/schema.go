package profiles

import "fmt"

// SettingType is the declared type of one setting in a profile schema.
type SettingType string

const (
	TypeInt    SettingType = "int"
	TypeString SettingType = "string"
	TypeBool   SettingType = "bool"
)

// SettingSpec constrains a single setting: its type, an optional numeric
// range for ints, and an optional enumerated option set for strings.
type SettingSpec struct {
	Type    SettingType `json:"type"`
	Min     *int        `json:"min,omitempty"`
	Max     *int        `json:"max,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// Schema maps setting keys to their constraints.
type Schema map[string]SettingSpec

// FieldError is one validation rejection: which setting failed and why.
// Settings validation is a structured result, not an error path; a rejected
// map never reaches the config writer.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Reason
}

// Validate checks a settings map against the schema. It returns every
// violation, not just the first, so the caller can report them all at once.
// An empty result means the map is safe to write.
func (sc Schema) Validate(settings map[string]any) []FieldError {
	var errs []FieldError

	for key, value := range settings {
		spec, ok := sc[key]
		if !ok {
			errs = append(errs, FieldError{key, "unknown setting"})
			continue
		}

		switch spec.Type {
		case TypeInt:
			n, ok := asInt(value)
			if !ok {
				errs = append(errs, FieldError{key, "must be an integer"})
				continue
			}
			if spec.Min != nil && n < *spec.Min {
				errs = append(errs, FieldError{key, fmt.Sprintf("below minimum %d", *spec.Min)})
			}
			if spec.Max != nil && n > *spec.Max {
				errs = append(errs, FieldError{key, fmt.Sprintf("above maximum %d", *spec.Max)})
			}

		case TypeString:
			str, ok := value.(string)
			if !ok {
				errs = append(errs, FieldError{key, "must be a string"})
				continue
			}
			if len(spec.Options) > 0 && !contains(spec.Options, str) {
				errs = append(errs, FieldError{key, fmt.Sprintf("%q is not an allowed option", str)})
			}

		case TypeBool:
			if _, ok := value.(bool); !ok {
				errs = append(errs, FieldError{key, "must be a boolean"})
			}

		default:
			errs = append(errs, FieldError{key, fmt.Sprintf("schema declares unknown type %q", spec.Type)})
		}
	}

	return errs
}

// asInt accepts the integer shapes that reach us: native ints from code and
// float64 from JSON-decoded maps (rejecting fractional values).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func contains(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}
