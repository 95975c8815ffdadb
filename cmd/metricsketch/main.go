// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

// Command metricsketch reads whitespace-separated numbers from standard
// input and prints an approximate statistics report as JSON. It takes no
// flags: point METRICSKETCH_CONFIG at a YAML file and override single
// keys with METRICSKETCH_* environment variables.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aws/metricsketch/stat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfg, err := loadConfig(os.Getenv(configPathEnv))
	if err != nil {
		fmt.Fprintln(os.Stderr, "E!", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("report failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core)
}

func run(cfg config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	d, err := stat.New(stat.Config{Base: cfg.Base, ZeroThreshold: cfg.ZeroThreshold})
	if err != nil {
		return err
	}
	if err := ingest(d, logger, in); err != nil {
		return err
	}
	logger.Info("ingested input",
		zap.Uint64("observations", d.Count()),
		zap.Int("buckets", d.Size()))

	r, err := buildReport(cfg, d)
	if err != nil {
		return err
	}
	enc, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(enc))
	return err
}

// ingest parses whitespace-separated numbers. Tokens that do not parse
// and values the engine rejects are logged and skipped.
func ingest(d *stat.Distribution, logger *zap.Logger, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			logger.Warn("skipping token", zap.String("token", scanner.Text()))
			continue
		}
		if err := d.Add(v); err != nil {
			logger.Warn("skipping value", zap.Float64("value", v), zap.Error(err))
		}
	}
	return scanner.Err()
}

type report struct {
	Count       uint64             `json:"count"`
	Min         *float64           `json:"min,omitempty"`
	Max         *float64           `json:"max,omitempty"`
	Mean        *float64           `json:"mean,omitempty"`
	StdDev      *float64           `json:"stddev,omitempty"`
	Mode        *float64           `json:"mode,omitempty"`
	Percentiles map[string]float64 `json:"percentiles,omitempty"`
	Histogram   []reportBin        `json:"histogram,omitempty"`
}

// reportBin mirrors stat.Bin with the implicit -Inf left boundary of the
// first bin clamped to the occupied range, since JSON has no infinities.
type reportBin struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Count float64 `json:"count"`
}

func buildReport(cfg config, d *stat.Distribution) (report, error) {
	r := report{Count: d.Count()}
	if v, ok := d.Min(); ok {
		r.Min = &v
	}
	if v, ok := d.Max(); ok {
		r.Max = &v
	}
	if v, ok := d.Mean(); ok {
		r.Mean = &v
	}
	if v, ok := d.StdDev(stat.SampleVariance); ok {
		r.StdDev = &v
	}
	if v, ok := d.Mode(); ok {
		r.Mode = &v
	}

	r.Percentiles = make(map[string]float64, len(cfg.Percentiles))
	for _, p := range cfg.Percentiles {
		v, ok, err := d.Percentile(p)
		if err != nil {
			return report{}, err
		}
		if ok {
			r.Percentiles[strconv.FormatFloat(p, 'g', -1, 64)] = v
		}
	}
	if len(r.Percentiles) == 0 {
		r.Percentiles = nil
	}

	if cfg.HistogramBins > 2 {
		bins, err := d.HistogramN(cfg.HistogramBins)
		if err != nil {
			return report{}, err
		}
		for _, b := range bins {
			if math.IsInf(b.Left, -1) {
				b.Left, _, _ = d.FindBoundaries()
			}
			r.Histogram = append(r.Histogram, reportBin{Left: b.Left, Right: b.Right, Count: b.Count})
		}
	}
	return r, nil
}
