// Package redis connects to a redis server from env-tagged
// configuration with bounded retries, for use by the redis-backed
// session store.
package redis
