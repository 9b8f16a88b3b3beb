package backend

import (
	"fmt"

	"kakei/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SeedDirectory: appConfig.MemorySeedDir,
		SQLiteDBPath:  appConfig.SQLiteDBPath,

		PostgresHost:     appConfig.Postgres.Host,
		PostgresPort:     appConfig.Postgres.Port,
		PostgresDatabase: appConfig.Postgres.Database,
		PostgresUser:     appConfig.Postgres.User,
		PostgresPassword: appConfig.Postgres.Password,
		PostgresSSLMode:  appConfig.Postgres.SSLMode,

		MemcacheHosts:  appConfig.MemcacheHosts,
		MemcachePrefix: appConfig.MemcachePrefix,
	}, nil
}
