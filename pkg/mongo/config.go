package mongo

import "time"

// Config for the MongoDB connection backing the mongo storage adapter.
type Config struct {
	ConnectionURL  string        `env:"MONGODB_URL,required"`                     // ConnectionURL is the URL of the database.
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"` // Timeout for establishing a connection.
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"16"`    // Maximum number of pooled connections.
	MinPoolSize    uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`     // Minimum number of pooled connections.
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`    // Number of connection attempts before giving up.
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`   // Delay between attempts.
}
