// Package scan computes per-station temperature extremes over a delimited
// measurements file. The file is memory-mapped, split into record-aligned
// byte ranges, scanned in parallel by double-buffered workers, and the
// worker-local aggregates are merged into one result.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/exp/mmap"
)

// WeatherStation holds the running extremes observed for one station.
type WeatherStation struct {
	Name    string
	Lowest  float64
	Highest float64
}

// Run scans the measurements file at path and returns the per-station
// extremes. Each line of the file must be <station>;<temperature>\n with
// one fractional digit and one or two integer digits. The run either
// returns a complete map or a single error; there is no partial result.
func Run(ctx context.Context, path string, opts ...Option) (map[string]*WeatherStation, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to map %s: %w", path, err)
	}
	defer ra.Close()

	ranges := planRanges(ra, cfg.workers)
	cfg.logger.Debug("planned chunks",
		slog.Int("fileSize", ra.Len()),
		slog.Int("ranges", len(ranges)),
		slog.Int("readChunk", cfg.readChunk),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One result slot and one error slot per worker; nothing shared.
	tables := make([]*stationTable, len(ranges))
	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for i, rng := range ranges {
		wg.Add(1)
		go func(i int, rng byteRange) {
			defer wg.Done()
			tbl, err := newWorker(ra, rng, cfg).run(ctx)
			if err != nil {
				errs[i] = err
				cancel() // first failure stops the remaining workers
				return
			}
			tables[i] = tbl
		}(i, rng)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", i, err)
		}
	}

	merged := mergeResults(tables)
	cfg.logger.Debug("merged results",
		slog.Int("workers", len(ranges)),
		slog.Int("stations", len(merged)),
	)
	return merged, nil
}

// mergeResults folds every worker table into one map keyed by station
// name. The fold is commutative and associative, so table order does not
// matter.
func mergeResults(tables []*stationTable) map[string]*WeatherStation {
	merged := make(map[string]*WeatherStation)
	for _, tbl := range tables {
		if tbl == nil {
			continue
		}
		tbl.fold(func(name []byte, lowest, highest float64) {
			ws, ok := merged[string(name)]
			if !ok {
				merged[string(name)] = &WeatherStation{
					Name:    string(name),
					Lowest:  lowest,
					Highest: highest,
				}
				return
			}
			ws.Lowest = min(ws.Lowest, lowest)
			ws.Highest = max(ws.Highest, highest)
		})
	}
	return merged
}
