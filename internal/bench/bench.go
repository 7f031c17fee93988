// Package bench drives repeated executions of one request through a
// shared client and aggregates latency percentiles.
package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/vane/pkg/vane"
)

// Options controls a bench run.
type Options struct {
	Iterations  int
	Concurrency int
}

// Report is the aggregated outcome of a run.
type Report struct {
	Total     int64
	Succeeded int64
	Failed    int64
	Elapsed   time.Duration
	Latency   LatencySummary
}

// LatencySummary holds percentile latencies computed from the HDR
// histogram.
type LatencySummary struct {
	Min  time.Duration
	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P99  time.Duration
	Max  time.Duration
}

// Throughput returns completed requests per second.
func (r *Report) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Total) / r.Elapsed.Seconds()
}

// Run executes the request Iterations times across Concurrency workers
// sharing one client. A response with any status counts as a success;
// only transport-level failures count as failed. Worker goroutines all
// call Execute on the same client concurrently, which the client
// supports by contract.
func Run(client *vane.Client, req vane.Request, opts Options) (*Report, error) {
	if opts.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1")
	}
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1")
	}
	if opts.Concurrency > opts.Iterations {
		opts.Concurrency = opts.Iterations
	}

	// Latencies from 1µs to 1 hour at 3 significant figures.
	hist := hdrhistogram.New(1, time.Hour.Microseconds(), 3)
	var histMu sync.Mutex

	var succeeded, failed atomic.Int64

	work := make(chan struct{})
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range work {
				began := time.Now()
				_, err := client.Execute(req)
				elapsed := time.Since(began)

				if err != nil {
					failed.Add(1)
					continue
				}
				succeeded.Add(1)

				histMu.Lock()
				hist.RecordValue(elapsed.Microseconds())
				histMu.Unlock()
			}
		}()
	}

	for i := 0; i < opts.Iterations; i++ {
		work <- struct{}{}
	}
	close(work)
	wg.Wait()

	report := &Report{
		Total:     succeeded.Load() + failed.Load(),
		Succeeded: succeeded.Load(),
		Failed:    failed.Load(),
		Elapsed:   time.Since(start),
	}
	if report.Succeeded > 0 {
		report.Latency = LatencySummary{
			Min:  time.Duration(hist.Min()) * time.Microsecond,
			Mean: time.Duration(hist.Mean()) * time.Microsecond,
			P50:  time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
			P90:  time.Duration(hist.ValueAtQuantile(90)) * time.Microsecond,
			P99:  time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
			Max:  time.Duration(hist.Max()) * time.Microsecond,
		}
	}
	return report, nil
}

// Summary renders the report as aligned text.
func (r *Report) Summary() string {
	return fmt.Sprintf(
		"Requests:    %d (%d ok, %d failed)\n"+
			"Elapsed:     %v\n"+
			"Throughput:  %.1f req/s\n"+
			"Latency:     min=%v mean=%v p50=%v p90=%v p99=%v max=%v\n",
		r.Total, r.Succeeded, r.Failed,
		r.Elapsed.Round(time.Millisecond),
		r.Throughput(),
		r.Latency.Min, r.Latency.Mean.Round(time.Microsecond),
		r.Latency.P50, r.Latency.P90, r.Latency.P99, r.Latency.Max,
	)
}
