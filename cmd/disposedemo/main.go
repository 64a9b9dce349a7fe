package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/unmanaged"
	"github.com/xaionaro-go/unmanaged/handletable"
	"github.com/xaionaro-go/unmanaged/internal"
	"github.com/xaionaro-go/unmanaged/platform"
)

const (
	backendOS    = "os"
	backendTable = "table"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	configPath := pflag.String("config", "", "path to a config file (.yaml, .yml, .toml or .json)")
	failurePolicy := unmanaged.FailurePolicyUndefined
	pflag.Var(&failurePolicy, "failure-policy", "what to do if a handle cannot be released: return_error|panic")
	backend := pflag.String("backend", backendOS, "where handles come from: os|table")
	skipClose := pflag.Bool("skip-close", false, "do not close the resource explicitly, let the garbage collector release it")
	fallbackTimeout := pflag.Duration("fallback-timeout", 5*time.Second, "how long to wait for the garbage collector with --skip-close")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	var cfg unmanaged.Config
	if *configPath != "" {
		var err error
		cfg, err = unmanaged.LoadConfig(*configPath)
		if err != nil {
			l.Fatal(err)
		}
	}
	if failurePolicy != unmanaged.FailurePolicyUndefined {
		cfg.FailurePolicy = failurePolicy
	}
	if *skipClose && cfg.Fallback == unmanaged.FallbackModeDisabled {
		l.Fatal("--skip-close requires the fallback to be enabled")
	}
	logger.Debugf(ctx, "config: %s", spew.Sdump(cfg))

	var (
		acquire  func(context.Context) (unmanaged.Handle, error)
		releaser unmanaged.Releaser
	)
	switch *backend {
	case backendOS:
		acquire = platform.NewWaitableTimer
		releaser = platform.Releaser{}
	case backendTable:
		table := handletable.New()
		acquire = func(ctx context.Context) (unmanaged.Handle, error) {
			return table.Allocate(ctx, "WaitableTimer"), nil
		}
		releaser = table
	default:
		l.Fatalf("unknown backend '%s'", *backend)
	}

	createThrowaway(ctx)

	handle, err := acquire(ctx)
	if err != nil {
		l.Fatal(err)
	}

	stats := &unmanaged.Statistics{}
	if *skipClose {
		abandon(ctx, handle, releaser, cfg, stats)
		if !waitForFallback(ctx, stats, *fallbackTimeout) {
			logger.Warnf(ctx, "the garbage collector has not released handle %s within %v", handle, *fallbackTimeout)
		}
	} else {
		r := unmanaged.New(ctx, handle, releaser, cfg, unmanaged.OptionStatistics{Statistics: stats})
		if err := r.Close(); err != nil {
			l.Fatal(err)
		}
	}

	s := stats.Convert()
	fmt.Printf(
		"created:%d explicit:%d fallback:%d failures:%d inner:%d\n",
		s.Created, s.ReleasedExplicitly, s.ReleasedByFallback, s.ReleaseFailures, s.InnerClosed,
	)
}

type throwaway struct {
	name string
}

// createThrowaway makes an object that only reports its own collection.
func createThrowaway(ctx context.Context) {
	t := &throwaway{name: "throwaway"}
	logger.Debugf(ctx, "%s instance created", t.name)
	internal.AddCleanup(ctx, t, func(name string) {
		logger.Debugf(ctx, "%s instance destroyed", name)
	}, t.name)
}

func abandon(
	ctx context.Context,
	handle unmanaged.Handle,
	releaser unmanaged.Releaser,
	cfg unmanaged.Config,
	stats *unmanaged.Statistics,
) {
	unmanaged.New(ctx, handle, releaser, cfg, unmanaged.OptionStatistics{Statistics: stats})
}

func waitForFallback(
	ctx context.Context,
	stats *unmanaged.Statistics,
	timeout time.Duration,
) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()
	for {
		runtime.GC()
		if stats.ReleasedByFallback.Load() > 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-t.C:
		}
	}
}
