package tenant

import "errors"

var ErrSettingsNotFound = errors.New("tenant payroll settings not found")
