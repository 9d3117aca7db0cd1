package config

import "time"

// localConfig serves the bundled fixture with console logs so the gateway
// runs without a legacy database.
func localConfig() Config {
	return Config{
		Port: ":8081",
		Env:  "local",
		Legacy: LegacyConfig{
			Driver:       DriverPostgres,
			MaxOpenConns: 4,
			QueryTimeout: 5 * time.Second,
			FixtureFile:  "testdata/legacy_fixture.yaml",
		},
		Cache: CacheConfig{
			Size: 64,
			TTL:  10 * time.Second,
		},
		LogLevel:  "debug",
		LogFormat: "console",
	}
}
