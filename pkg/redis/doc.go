// Package redis establishes the Redis connection used by the redis vault
// storage backend (authenticator.RedisStorage). Configuration comes from
// REDIS_* environment variables; Connect retries with a ping-verified client.
package redis
