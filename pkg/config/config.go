package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/inventario-core/internal/domain/access"
)

// Config agrupa la configuración que la aplicación anfitriona lee una sola
// vez al arrancar (vía Viper, desde env y opcionalmente config.json).
type Config struct {
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
	Auth  AuthConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string
}

// StoreConfig ubicación del almacén. Path es la ruta del archivo sqlite;
// en config.json histórico la clave es default_db.
type StoreConfig struct {
	Path string
}

// AuthConfig parámetros del guard de acceso.
type AuthConfig struct {
	Salt        string
	MaxAttempts int
}

// Load lee la configuración desde variables de entorno y opcionalmente
// desde config.json en el directorio de trabajo. Las env vars tienen
// prioridad. Nombres esperados: APP_ENV, APP_NAME, LOG_LEVEL, STORE_PATH,
// AUTH_SALT, AUTH_MAX_ATTEMPTS.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: config.json heredado ({"default_db": "ruta/al/archivo"}).
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	storePath := getString(v, "STORE_PATH", "")
	if storePath == "" {
		storePath = getString(v, "default_db", "inventario.db")
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-core"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Path: storePath,
		},
		Auth: AuthConfig{
			Salt:        getString(v, "AUTH_SALT", access.DefaultSalt),
			MaxAttempts: getInt(v, "AUTH_MAX_ATTEMPTS", 3),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
