package config

import (
	"strings"

	"github.com/nspcc-dev/neofs-blockstore/cmd/blockstore/config/internal/validate"
)

// Sub returns subsection of the Config by name.
func (x *Config) Sub(name string) *Config {
	path := make([]string, len(x.path), len(x.path)+1)
	copy(path, x.path)

	return &Config{
		v:    x.v,
		path: append(path, name),
	}
}

// Value returns configuration value by name.
//
// Result can be casted to a particular type
// via corresponding function (e.g. StringSafe).
// Note: casting via Go `.()` operator is not
// recommended.
func (x *Config) Value(name string) any {
	return x.v.Get(strings.Join(append(x.path, name), separator))
}

// Validate checks the whole config tree for unknown sections and values
// of unexpected types.
func (x *Config) Validate() error {
	return validate.ValidateStruct(x.v)
}
