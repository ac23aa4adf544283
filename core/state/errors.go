package state

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every configuration error returned by the loader.
var ErrConfig = errors.New("configuration error")

// ConfigError reports a missing or mistyped field of the merged document.
type ConfigError struct {
	Key    string // dotted path of the offending field
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfig) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func missing(key string) error {
	return &ConfigError{Key: key, Reason: "missing required field"}
}

func mistyped(key, want string, got any) error {
	return &ConfigError{Key: key, Reason: fmt.Sprintf("expected %s, got %T", want, got)}
}
