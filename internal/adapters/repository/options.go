package repository

// storeConfig applies a configuration option to a store.
type storeConfig func(*config)

type config struct {
	shardCount int
}

// WithShardCount sets the number of shards in the event store.
func WithShardCount(count int) storeConfig {
	return func(c *config) {
		if count > 0 {
			c.shardCount = count
		}
	}
}
