package records

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/records/secret"
)

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	ApplicationName string `mapstructure:"application_name"`
	InstanceName    string `mapstructure:"instance_name"`

	Environment Environment `mapstructure:"environment"`
	LogLevel    string      `mapstructure:"log_level"`

	Store    Store    `mapstructure:"store"`
	HTTP     HTTP     `mapstructure:"http"`
	Postgres Postgres `mapstructure:"postgres"`
	OTEL     OTEL     `mapstructure:"otel"`
	Loki     Loki     `mapstructure:"loki"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

const (
	MemoryStore   StoreKind = "memory"
	JSONStore     StoreKind = "json"
	PostgresStore StoreKind = "postgres"
)

// StoreKinds is the list of all supported persistence backends of the repositories.
func StoreKinds() []StoreKind {
	return []StoreKind{MemoryStore, JSONStore, PostgresStore}
}

type StoreKind string

type (
	Store struct {
		Kind StoreKind `mapstructure:"kind" json:"kind"`
		Dir  string    `mapstructure:"dir"  json:"dir"`
	}

	HTTP struct {
		Port                  int  `mapstructure:"port"                    json:"port"`
		StatusEndpointEnabled bool `mapstructure:"status_endpoint_enabled" json:"-"`
		StatusEndpointPort    int  `mapstructure:"status_endpoint_port"    json:"-"`
	}

	Postgres struct {
		User     string        `mapstructure:"user"            json:"user"`
		Password secret.Secret `mapstructure:"password,squash" json:"-"`
		Database string        `mapstructure:"database"        json:"database"`
		Host     string        `mapstructure:"host"            json:"host"`
		Port     int           `mapstructure:"port"            json:"port"`
		SSLMode  string        `mapstructure:"ssl_mode"        json:"sslMode"`
		MaxConns int           `mapstructure:"max_conns"       json:"maxConns"`
	}

	OTEL struct {
		Enabled  bool   `mapstructure:"enabled"  json:"enabled"`
		Host     string `mapstructure:"host"     json:"host"`
		Port     int    `mapstructure:"port"     json:"port"`
		Hostname string `mapstructure:"hostname" json:"hostname"`
	}

	Loki struct {
		URL string `mapstructure:"url" json:"url"`
	}
)

// EnvPrefix is the prefix of all environment variables overwriting a configuration value,
// e.g. RECORDS_STORE_KIND=json.
const EnvPrefix = "RECORDS"

// DefaultViper returns a new viper instance with all default values
// from Config set. Every key can be overwritten by an environment variable with EnvPrefix.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("application_name", "records")
	vip.SetDefault("instance_name", "")

	vip.SetDefault("environment", "local")
	vip.SetDefault("log_level", "info")

	vip.SetDefault("store.kind", "memory")
	vip.SetDefault("store.dir", "data")

	vip.SetDefault("http.port", 8080)
	vip.SetDefault("http.status_endpoint_enabled", true)
	vip.SetDefault("http.status_endpoint_port", 2223)

	vip.SetDefault("postgres.user", "records")
	vip.SetDefault("postgres.password", "secret")
	vip.SetDefault("postgres.database", "records")
	vip.SetDefault("postgres.host", "localhost")
	vip.SetDefault("postgres.port", 5432)
	vip.SetDefault("postgres.ssl_mode", "disable")
	vip.SetDefault("postgres.max_conns", 10)

	vip.SetDefault("otel.enabled", false)
	vip.SetDefault("otel.host", "localhost")
	vip.SetDefault("otel.port", 4317)
	vip.SetDefault("otel.hostname", "")

	vip.SetDefault("loki.url", "")

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that secret.Secret data type is automatically marshalled and the
// developer does not have to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, _ ...viper.DecoderConfigOption) error {
	err := vip.Viper.Unmarshal(rawVal, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedValueHookFunc(Environments()),
		allowedValueHookFunc(StoreKinds()),
	)))
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	// Config uses secret.Secret to mask information e.g. in logs.
	// The data type has to be manually unmarshalled.
	config, embeddedField := findConfig(rawVal)
	if config == nil {
		return fmt.Errorf("%w: could not cast to records.Config", errConfigLoadFailed)
	}

	err = vip.Viper.UnmarshalKey(
		"postgres.password",
		&config.Postgres.Password,
		viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()),
	)
	if err != nil {
		return fmt.Errorf("%w: could not decode secret: %v", errConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	if embeddedField >= 0 {
		reflect.Indirect(reflect.ValueOf(rawVal)).Field(embeddedField).Set(reflect.ValueOf(*config))
	}

	return nil
}

// findConfig returns the Config in rawVal, which is either a *Config or
// a pointer to a struct embedding Config. The index of the embedded field is -1 for *Config.
func findConfig(rawVal any) (*Config, int) {
	if config, ok := rawVal.(*Config); ok {
		return config, -1
	}

	f := reflect.Indirect(reflect.ValueOf(rawVal))
	if f.Kind() != reflect.Struct {
		return nil, -1
	}

	for i := range f.NumField() {
		if conf, ok := f.Field(i).Interface().(Config); ok {
			return &conf, i
		}
	}

	return nil, -1
}

// allowedValueHookFunc rejects values of the string based type T that are not in allowed.
func allowedValueHookFunc[T ~string](allowed []T) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(*new(T)) {
			return data, nil
		}

		val, _ := data.(string)
		if slices.Contains(allowed, T(val)) {
			return data, nil
		}

		e := make([]string, 0, len(allowed))
		for _, a := range allowed {
			e = append(e, string(a))
		}

		return data, fmt.Errorf("value %q is not allowed, use one of: %s", val, strings.Join(e, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
