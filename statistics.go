package unmanaged

import (
	"sync/atomic"
)

type Stats struct {
	Created            uint64
	ReleasedExplicitly uint64
	ReleasedByFallback uint64
	ReleaseFailures    uint64
	InnerClosed        uint64
}

type Statistics struct {
	Created            atomic.Uint64
	ReleasedExplicitly atomic.Uint64
	ReleasedByFallback atomic.Uint64
	ReleaseFailures    atomic.Uint64
	InnerClosed        atomic.Uint64
}

func (stats *Statistics) Convert() Stats {
	return Stats{
		Created:            stats.Created.Load(),
		ReleasedExplicitly: stats.ReleasedExplicitly.Load(),
		ReleasedByFallback: stats.ReleasedByFallback.Load(),
		ReleaseFailures:    stats.ReleaseFailures.Load(),
		InnerClosed:        stats.InnerClosed.Load(),
	}
}
