package unmanaged

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	FailurePolicy FailurePolicy `json:"failure_policy,omitempty" yaml:"failure_policy,omitempty" toml:"failure_policy,omitempty"`
	Fallback      FallbackMode  `json:"fallback,omitempty"       yaml:"fallback,omitempty"       toml:"fallback,omitempty"`
}

func LoadConfig(path string) (Config, error) {
	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".toml" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "unable to decode TOML config '%s'", path)
		}
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to read config '%s'", path)
	}

	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		return Config{}, errors.Errorf("unknown config format '%s' of file '%s'", ext, path)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode config '%s'", path)
	}
	return cfg, nil
}

// FailurePolicy defines what happens when the Releaser fails to release
// a handle. The undefined value behaves as FailurePolicyReturnError.
type FailurePolicy uint

const (
	FailurePolicyUndefined = FailurePolicy(iota)
	FailurePolicyReturnError
	FailurePolicyPanic
	EndOfFailurePolicy
)

func (p FailurePolicy) String() string {
	switch p {
	case FailurePolicyUndefined:
		return "<undefined>"
	case FailurePolicyReturnError:
		return "return_error"
	case FailurePolicyPanic:
		return "panic"
	}
	return fmt.Sprintf("unexpected_failure_policy_%d", uint(p))
}

func (p FailurePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *FailurePolicy) UnmarshalText(b []byte) error {
	if p == nil {
		return fmt.Errorf("FailurePolicy is nil")
	}
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for cmp := FailurePolicyUndefined; cmp < EndOfFailurePolicy; cmp++ {
		if cmp.String() == s {
			*p = cmp
			return nil
		}
	}
	return fmt.Errorf("unknown value of the FailurePolicy: '%s'", s)
}

func (p *FailurePolicy) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}

func (*FailurePolicy) Type() string {
	return "FailurePolicy"
}

// FallbackMode selects whether a collector-driven release is registered for
// resources that are never closed explicitly.
type FallbackMode uint

const (
	FallbackModeUndefined = FallbackMode(iota)
	FallbackModeCleanup
	FallbackModeDisabled
	EndOfFallbackMode
)

func (m FallbackMode) String() string {
	switch m {
	case FallbackModeUndefined:
		return "<undefined>"
	case FallbackModeCleanup:
		return "cleanup"
	case FallbackModeDisabled:
		return "disabled"
	}
	return fmt.Sprintf("unexpected_fallback_mode_%d", uint(m))
}

func (m FallbackMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *FallbackMode) UnmarshalText(b []byte) error {
	if m == nil {
		return fmt.Errorf("FallbackMode is nil")
	}
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for cmp := FallbackModeUndefined; cmp < EndOfFallbackMode; cmp++ {
		if cmp.String() == s {
			*m = cmp
			return nil
		}
	}
	return fmt.Errorf("unknown value of the FallbackMode: '%s'", s)
}

func (m *FallbackMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

func (*FallbackMode) Type() string {
	return "FallbackMode"
}
