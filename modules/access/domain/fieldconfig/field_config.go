package fieldconfig

// FieldSetting declares whether a field is shown and whether it must be
// filled for a given organization's records.
type FieldSetting struct {
	Visible  bool `json:"visible"`
	Required bool `json:"required"`
}

// Config is one organization's field configuration, keyed by field name.
type Config map[string]FieldSetting

// Effective is the merged field configuration a request is evaluated
// against. A nil *Effective is the unrestricted sentinel (admin): every
// field visible, nothing required.
type Effective struct {
	fields Config
}

func NewEffective(cfg Config) *Effective {
	return &Effective{fields: cfg}
}

// Merge folds one or more organization configs into one effective view. For every key
// present in any source, visible and required are OR-ed across the sources
// that define it. Keys absent from all sources are not materialized;
// consumers default those to visible=true, required=false. Merge is
// idempotent and commutative.
func Merge(configs ...Config) *Effective {
	merged := Config{}
	for _, cfg := range configs {
		for key, setting := range cfg {
			current := merged[key]
			merged[key] = FieldSetting{
				Visible:  current.Visible || setting.Visible,
				Required: current.Required || setting.Required,
			}
		}
	}
	return &Effective{fields: merged}
}

// Visible reports whether the field may be shown. Unknown fields default to
// visible; the unrestricted sentinel shows everything.
func (e *Effective) Visible(key string) bool {
	if e == nil {
		return true
	}
	setting, ok := e.fields[key]
	if !ok {
		return true
	}
	return setting.Visible
}

// Required reports whether the field must be filled. Unknown fields and the
// unrestricted sentinel impose no requirement.
func (e *Effective) Required(key string) bool {
	if e == nil {
		return false
	}
	return e.fields[key].Required
}

// Fields exposes the materialized settings for serialization. Nil for the
// unrestricted sentinel.
func (e *Effective) Fields() Config {
	if e == nil {
		return nil
	}
	return e.fields
}
