package config

import "errors"

// ErrInvalid is returned by Validate for an unusable setting.
var ErrInvalid = errors.New("config: invalid setting")
