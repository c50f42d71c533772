package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var defaultLoadWords = []string{
	"cat", "dog", "hot", "cold", "run", "light", "bank", "set",
	"play", "table", "green", "fast", "spring", "bear", "rock",
}

type loadTestConfig struct {
	baseURL     string
	concurrency int
	duration    time.Duration
	words       []string
}

// loadStats collects per-request outcomes from all workers.
type loadStats struct {
	mu        sync.Mutex
	total     int
	failed    int
	latencies []time.Duration
	status    map[int]int
}

func (s *loadStats) record(latency time.Duration, status int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	if err != nil {
		s.failed++
		return
	}
	if status < 200 || status >= 300 {
		s.failed++
	}
	s.latencies = append(s.latencies, latency)
	s.status[status]++
}

func newLoadTestCmd() *cobra.Command {
	cfg := loadTestConfig{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive concurrent define requests against a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.concurrency < 1 {
				return fmt.Errorf("concurrency must be at least 1")
			}
			if len(cfg.words) == 0 {
				return fmt.Errorf("at least one word is required")
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Target:      %s\n", cfg.baseURL)
			fmt.Fprintf(w, "Concurrency: %d\n", cfg.concurrency)
			fmt.Fprintf(w, "Duration:    %s\n", cfg.duration)
			fmt.Fprintf(w, "Words:       %d\n\n", len(cfg.words))

			stats, err := runLoadTest(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printLoadReport(w, stats, cfg.duration)
			if stats.total == 0 {
				return fmt.Errorf("no requests completed; is the server running at %s?", cfg.baseURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.baseURL, "url", "http://localhost:8080", "base URL of the server")
	cmd.Flags().IntVar(&cfg.concurrency, "concurrency", 10, "number of concurrent workers")
	cmd.Flags().DurationVar(&cfg.duration, "duration", 30*time.Second, "how long to generate load")
	cmd.Flags().StringSliceVar(&cfg.words, "words", defaultLoadWords, "words to define, cycled per worker")
	return cmd
}

func runLoadTest(ctx context.Context, cfg loadTestConfig) (*loadStats, error) {
	stats := &loadStats{status: make(map[int]int)}
	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.concurrency * 2,
			MaxIdleConnsPerHost: cfg.concurrency * 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	defer client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(ctx, cfg.duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for worker := range cfg.concurrency {
		g.Go(func() error {
			for i := worker; ctx.Err() == nil; i++ {
				word := cfg.words[i%len(cfg.words)]
				target := fmt.Sprintf("%s/api/v1/define?word=%s", cfg.baseURL, url.QueryEscape(word))
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
				if err != nil {
					return fmt.Errorf("building request: %w", err)
				}
				start := time.Now()
				resp, err := client.Do(req)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					stats.record(time.Since(start), 0, err)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				stats.record(time.Since(start), resp.StatusCode, nil)
			}
			return nil
		})
	}
	return stats, g.Wait()
}

func printLoadReport(w io.Writer, stats *loadStats, duration time.Duration) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "Total Requests:  %d\n", stats.total)
	fmt.Fprintf(w, "Successful:      %d\n", stats.total-stats.failed)
	fmt.Fprintf(w, "Errors:          %d\n", stats.failed)
	if stats.total > 0 {
		fmt.Fprintf(w, "Error Rate:      %.2f%%\n", float64(stats.failed)/float64(stats.total)*100)
		fmt.Fprintf(w, "Requests/sec:    %.2f\n", float64(stats.total)/duration.Seconds())
	}

	if len(stats.latencies) > 0 {
		latencies := slices.Clone(stats.latencies)
		slices.Sort(latencies)
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Latency ===")
		fmt.Fprintf(w, "Min:    %s\n", latencies[0])
		fmt.Fprintf(w, "Avg:    %s\n", sum/time.Duration(len(latencies)))
		for _, p := range []float64{50, 90, 95, 99} {
			fmt.Fprintf(w, "P%-2.0f:    %s\n", p, percentile(latencies, p))
		}
		fmt.Fprintf(w, "Max:    %s\n", latencies[len(latencies)-1])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Status Codes ===")
	codes := make([]int, 0, len(stats.status))
	for code := range stats.status {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %d: %d\n", code, stats.status[code])
	}
}

// percentile uses the nearest-rank method on sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	return sorted[max(0, min(idx, len(sorted)-1))]
}
