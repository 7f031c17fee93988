package bench

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/vane/pkg/vane"
)

func newBenchClient(t *testing.T, url string) *vane.Client {
	t.Helper()
	client, err := vane.NewClient(vane.NewConfig().WithBaseURL(url).Build())
	require.NoError(t, err)
	return client
}

func TestRun(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newBenchClient(t, server.URL)

	report, err := Run(client, vane.Request{Method: "GET", URL: "/"}, Options{
		Iterations:  20,
		Concurrency: 4,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 20, report.Total)
	assert.EqualValues(t, 20, report.Succeeded)
	assert.EqualValues(t, 0, report.Failed)
	assert.EqualValues(t, 20, hits.Load())
	assert.GreaterOrEqual(t, report.Latency.Max, report.Latency.Min)
	assert.Positive(t, report.Throughput())
}

func TestRun_CountsFailures(t *testing.T) {
	// Point at a server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newBenchClient(t, url)

	report, err := Run(client, vane.Request{Method: "GET", URL: "/"}, Options{
		Iterations:  5,
		Concurrency: 2,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, report.Total)
	assert.EqualValues(t, 5, report.Failed)
}

func TestRun_Non2xxCountsAsCompleted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := newBenchClient(t, server.URL)

	report, err := Run(client, vane.Request{Method: "GET", URL: "/"}, Options{
		Iterations:  3,
		Concurrency: 1,
	})
	require.NoError(t, err)

	// A 418 is still a completed exchange, not a failure.
	assert.EqualValues(t, 3, report.Succeeded)
}

func TestRun_InvalidOptions(t *testing.T) {
	client := newBenchClient(t, "http://example.com")

	_, err := Run(client, vane.Request{Method: "GET", URL: "/"}, Options{Iterations: 0, Concurrency: 1})
	assert.Error(t, err)

	_, err = Run(client, vane.Request{Method: "GET", URL: "/"}, Options{Iterations: 1, Concurrency: 0})
	assert.Error(t, err)
}

func TestReport_Summary(t *testing.T) {
	report := &Report{Total: 10, Succeeded: 9, Failed: 1}
	out := report.Summary()
	assert.Contains(t, out, "10 (9 ok, 1 failed)")
}
