package config

import "time"

type Redis struct {
	// Пустой Address отключает общий кеш очищенной таблицы.
	Address            string        `env:"REDIS_ADDRESS"`
	Username           string        `env:"REDIS_USERNAME"`
	Password           string        `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int           `env:"REDIS_POOL_SIZE" envDefault:"5"`
	MinIdleConnections int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int           `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
	DatasetCacheTTL    time.Duration `env:"DATASET_CACHE_TTL" envDefault:"24h"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}
