package viewmodels

type FieldConfig struct {
	Unrestricted bool                    `json:"unrestricted"`
	Fields       map[string]FieldSetting `json:"fields,omitempty"`
}

type FieldSetting struct {
	Visible  bool `json:"visible"`
	Required bool `json:"required"`
}
