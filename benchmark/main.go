// Package main provides a performance benchmarking tool for the moodmixer CLI.
// It measures execution times across drink catalogs of different sizes and
// command types, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm, and generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - moodmixer binary installed and available in PATH
// - A directory of JSON drink catalogs (for example small.json, large.json)
//
// Usage: go run benchmark/main.go [catalog-dir]
//
//	catalog-dir: Directory containing JSON drink catalogs
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Catalog     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	CatalogDir  string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	Catalogs    []string
	Commands    map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [catalog-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		CatalogDir:  os.Args[1],
		Timeout:     time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Commands: map[string][]string{
			"recommend": {"recommend", "energetic=8", "cozy=3", "--limit", "20"},
			"mood":      {"mood", "--occasion", "night-out"},
			"bars":      {"bars", "romantic=9"},
			"search":    {"search", "lime"},
			"poll":      {"poll", "ana=cozy", "ben=romantic", "cy=cozy"},
		},
	}

	catalogs, err := findCatalogs(config.CatalogDir)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	config.Catalogs = catalogs

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the profile store so the cold run starts empty
	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("moodmixer", "store", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// findCatalogs lists the JSON catalogs in dir.
func findCatalogs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no JSON catalogs found in %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// checkPrerequisites verifies that the moodmixer binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("moodmixer"); err != nil {
		return fmt.Errorf("moodmixer binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured catalogs
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d catalogs, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Catalogs), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	commands := make([]string, 0, len(config.Commands))
	for name := range config.Commands {
		commands = append(commands, name)
	}
	sort.Strings(commands)

	for _, catalog := range config.Catalogs {
		fmt.Printf("Benchmarking %s\n", filepath.Base(catalog))
		for _, name := range commands {
			results = append(results, runBenchmarkSuite(config, catalog, name))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, catalog, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, filepath.Base(catalog))

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, catalog, config.Commands[command], backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: In-memory store
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: SQLite store
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Catalog:     filepath.Base(catalog),
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a moodmixer command multiple times with the given store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, catalog string, command []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, command...)
	args = append(args, "--catalog", catalog, "--store-backend", backend, "--output", "json", "--seed", "1")

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("moodmixer", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks that the command produced a JSON document
func isSuccess(output []byte) bool {
	trimmed := strings.TrimSpace(string(output))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("moodmixer_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"catalog", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Catalog, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	byCommand := make(map[string][]BenchmarkResult)
	var commands []string
	for _, r := range results {
		if _, ok := byCommand[r.Command]; !ok {
			commands = append(commands, r.Command)
		}
		byCommand[r.Command] = append(byCommand[r.Command], r)
	}
	for _, command := range commands {
		fmt.Printf("%s:\n", command)
		for _, r := range byCommand[command] {
			fmt.Printf("  %-16s: No-store: %s, Cold: %s, Warm: %s\n", r.Catalog, r.NoStoreTime, r.ColdTime, r.WarmTime)
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
