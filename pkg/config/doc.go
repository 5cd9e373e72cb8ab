// Package config loads env-tagged configuration structs from the
// process environment, optionally seeded from .env files.
//
// Every configurable package in this module (session, cookie, stores)
// declares its own Config struct with `env` tags and sensible
// envDefault values; this package is the single place that knows how
// those structs get filled.
package config
