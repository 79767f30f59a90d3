package mappers

import (
	"github.com/marinehub/fleetdesk/modules/access/domain/fieldconfig"
	"github.com/marinehub/fleetdesk/modules/access/presentation/viewmodels"
)

func FieldConfigToViewModel(eff *fieldconfig.Effective) *viewmodels.FieldConfig {
	if eff == nil {
		return &viewmodels.FieldConfig{Unrestricted: true}
	}
	fields := make(map[string]viewmodels.FieldSetting, len(eff.Fields()))
	for key, setting := range eff.Fields() {
		fields[key] = viewmodels.FieldSetting{
			Visible:  setting.Visible,
			Required: setting.Required,
		}
	}
	return &viewmodels.FieldConfig{Fields: fields}
}
