// Package pg builds a pgx/v5 connection pool from env-tagged
// configuration with bounded retries, for use by the PostgreSQL-backed
// session store.
package pg
