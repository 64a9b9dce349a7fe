package unmanaged

import (
	"context"
	"io"
)

type Option = any
type Options []Option

// GetOption returns the first option of type T.
func GetOption[T any](in Options) (T, bool) {
	for _, item := range in {
		v, ok := item.(T)
		if ok {
			return v, ok
		}
	}

	var zeroValue T
	return zeroValue, false
}

// OptionInnerFactory overrides how the owned inner resource is constructed.
// By default it is a *Component.
type OptionInnerFactory func(ctx context.Context) io.Closer

type OptionStatistics struct {
	Statistics *Statistics
}
