package pg

import "errors"

var (
	ErrInvalidConfig = errors.New("pg.invalid_config")
	ErrNotReady      = errors.New("pg.not_ready")
)
