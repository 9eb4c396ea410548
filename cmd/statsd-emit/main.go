// Command statsd-emit sends a single metric to statsd server.
//
// Usage:
//
//	statsd-emit --host statsd.local --prefix web -t env=prod -k g pool.size 42
package main

/*

Copyright (c) 2017 Andrey Smirnov

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	statsd "github.com/smira/nbstatsd"
)

type config struct {
	host    string
	port    int
	prefix  string
	tags    []string
	kind    string
	timeout time.Duration
	verbose bool

	aspect string
	value  string
}

func parseArgs(args []string, output io.Writer) (*config, error) {
	cfg := &config{}

	flags := pflag.NewFlagSet("statsd-emit", pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVarP(&cfg.host, "host", "H", "localhost", "statsd server host")
	flags.IntVarP(&cfg.port, "port", "p", 8125, "statsd server port")
	flags.StringVar(&cfg.prefix, "prefix", "", "prefix for the metric name")
	flags.StringArrayVarP(&cfg.tags, "tag", "t", nil, "tag as key=value or bare flag, could be repeated")
	flags.StringVarP(&cfg.kind, "type", "k", "c", "metric type: c, g, ms or h")
	flags.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "how long to wait for the metric to be sent")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug messages")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if flags.NArg() != 2 {
		return nil, errors.New("expected arguments: <aspect> <value>")
	}

	cfg.aspect, cfg.value = flags.Arg(0), flags.Arg(1)

	return cfg, nil
}

// emit records value of the given kind, integer values are preferred when value parses as integer
func emit(client statsd.Statter, kind, aspect, value string, tags []string) error {
	i, intErr := strconv.ParseInt(value, 10, 64)

	switch kind {
	case "c":
		if intErr != nil {
			return fmt.Errorf("counter value should be integer: %w", intErr)
		}
		client.Count(aspect, i, tags...)
	case "ms":
		if intErr != nil {
			return fmt.Errorf("timing value should be integer milliseconds: %w", intErr)
		}
		client.Timing(aspect, i, tags...)
	case "g", "h":
		if intErr == nil {
			if kind == "g" {
				client.Gauge(aspect, i, tags...)
			} else {
				client.Histogram(aspect, i, tags...)
			}

			return nil
		}

		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", value, err)
		}

		if kind == "g" {
			client.FGauge(aspect, f, tags...)
		} else {
			client.FHistogram(aspect, f, tags...)
		}
	default:
		return fmt.Errorf("unsupported metric type %q", kind)
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}

func run(args []string, output io.Writer) error {
	cfg, err := parseArgs(args, output)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint: errcheck

	addr := net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port))

	client, err := statsd.NewClient(addr,
		statsd.MetricPrefix(cfg.prefix),
		statsd.ErrorHandler(statsd.ZapErrorHandler(logger)),
		statsd.ShutdownTimeout(cfg.timeout))
	if err != nil {
		return err
	}
	defer client.Stop()

	if err = emit(client, cfg.kind, cfg.aspect, cfg.value, cfg.tags); err != nil {
		return err
	}

	logger.Debug("metric queued",
		zap.String("addr", addr),
		zap.String("aspect", cfg.aspect),
		zap.String("type", cfg.kind),
		zap.Strings("tags", cfg.tags))

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "statsd-emit: %s\n", err)
		os.Exit(1)
	}
}
