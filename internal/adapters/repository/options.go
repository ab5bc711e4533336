package repository

// Option applies a configuration option to the LedgerStore.
type Option func(*LedgerStore)

// WithShardCount sets the number of shards. Values below 1 keep the
// default.
func WithShardCount(n int) Option {
	return func(s *LedgerStore) {
		if n > 0 {
			s.shardCount = n
		}
	}
}
