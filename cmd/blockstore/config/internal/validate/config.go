package validate

import "time"

type validConfig struct {
	Logger struct {
		Level    string `mapstructure:"level"`
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"logger"`

	GRPC struct {
		Endpoint       string `mapstructure:"endpoint"`
		MaxMessageSize string `mapstructure:"max_message_size"`
	} `mapstructure:"grpc"`

	Storage struct {
		Path     string `mapstructure:"path"`
		DirectIO bool   `mapstructure:"direct_io"`
		Backend  string `mapstructure:"backend"`
		Ring     struct {
			Entries       uint32        `mapstructure:"entries"`
			SlowThreshold time.Duration `mapstructure:"slow_threshold"`
		} `mapstructure:"ring"`
		Fallback struct {
			Workers       int           `mapstructure:"workers"`
			SlowThreshold time.Duration `mapstructure:"slow_threshold"`
		} `mapstructure:"fallback"`
	} `mapstructure:"storage"`

	Prometheus httpService `mapstructure:"prometheus"`
	Pprof      httpService `mapstructure:"pprof"`
}

type httpService struct {
	Enabled         bool          `mapstructure:"enabled"`
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
