package config

import "errors"

var (
	ErrNilPointer     = errors.New("config.nil_pointer")
	ErrParsingConfig  = errors.New("config.parsing_failed")
	ErrLoadingEnvFile = errors.New("config.env_file_failed")
)
