package kv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/rubin/cmd/util"
	"github.com/ValentinKolb/rubin/rpc/client"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for rubin servers",
		Long:    "Runs set, get, incr, rm and mixed workloads against a server and prints latency statistics per workload. Every request opens its own connection.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix   = "__test"
	perfValueWords  = 1
	perfNumThreads  = 10
	perfKeySpread   = 100
	perfRequests    = 1000
	perfSkip        = make([]string, 0)
	perfTests       = []string{"set", "get", "incr", "rm", "mixed"}
	perfPercentiles = []float64{0.5, 0.9, 0.99}
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of goroutines sending requests"))
	key = "requests"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("Number of requests per benchmark"))
	key = "value-words"
	perfTestCmd.Flags().Int(key, 1, util.WrapString("How many words the value of the set benchmark has"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfValueWords = max(viper.GetInt("value-words"), 1)
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfRequests = max(viper.GetInt("requests"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for rubin servers")

	// Print configuration
	config := util.GetClientConfig()
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d, Requests: %d, Keys: %d\n", perfNumThreads, perfRequests, perfKeySpread)
	fmt.Println()

	fmt.Println("starting tests...")

	registry := metrics.NewRegistry()
	value := strings.TrimSpace(strings.Repeat("test ", perfValueWords))

	for _, test := range perfTests {
		if shouldSkip(test) {
			fmt.Printf("%-10sskipped\n", test)
			continue
		}

		getKey, iter := getKeys(test)

		// prepare keys
		if test != "set" {
			iter(func(k string) { logErr(test, insert(k, value)) })
		}

		timer := metrics.NewTimer()
		if err := registry.Register(test, timer); err != nil {
			return err
		}

		start := time.Now()
		benchmark(timer, func(i int) error {
			key := getKey(i)
			switch test {
			case "set":
				return insert(key, value)
			case "get":
				_, err := rpcClient.GetString(key)
				return err
			case "incr":
				_, err := rpcClient.Incr(key)
				return err
			case "rm":
				_, err := rpcClient.RemoveString(key)
				return err
			default: // mixed
				return mixed(i, key, value)
			}
		})
		printResult(test, timer, time.Since(start))

		// cleanup
		iter(func(k string) {
			_, err := rpcClient.RemoveString(k)
			logErr(test, err)
		})
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, registry); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchmark runs perfRequests calls of fn spread over perfNumThreads goroutines and times each call
func benchmark(timer metrics.Timer, fn func(i int) error) {
	var (
		wg   sync.WaitGroup
		next = make(chan int)
	)

	for w := 0; w < perfNumThreads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				start := time.Now()
				err := fn(i)
				timer.UpdateSince(start)
				logErr("benchmark", err)
			}
		}()
	}

	for i := 0; i < perfRequests; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

func insert(key, value string) error {
	_, err := rpcClient.InsertString(key, value)
	return err
}

func mixed(i int, key, value string) error {
	var err error
	switch i % 4 {
	case 0:
		err = insert(key, value)
	case 1:
		_, err = rpcClient.GetString(key)
	case 2:
		_, err = rpcClient.Incr(key)
	case 3:
		_, err = rpcClient.RemoveString(key)
	}
	return err
}

func logErr(test string, err error) {
	if err == nil {
		return
	}
	var serverErr *client.ServerError
	if errors.As(err, &serverErr) {
		log.Printf("(%s) - server rejected request: %s\n", test, serverErr.Msg)
		return
	}
	log.Printf("(%s) - error: %v\n", test, err)
}

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark in a formatted way
func printResult(test string, timer metrics.Timer, elapsed time.Duration) {
	ps := timer.Percentiles(perfPercentiles)
	opsPerSec := float64(timer.Count()) / elapsed.Seconds()

	fmt.Printf("%-10smean %-12s p50 %-12s p90 %-12s p99 %-12s %.0f ops/sec\n",
		test,
		time.Duration(timer.Mean()),
		time.Duration(ps[0]),
		time.Duration(ps[1]),
		time.Duration(ps[2]),
		opsPerSec,
	)
}

// writeResultsToCSV writes the timers of the registry to a CSV file
func writeResultsToCSV(csvPath string, registry metrics.Registry) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "MeanNs", "P50Ns", "P90Ns", "P99Ns", "MaxNs",
		"Endpoint", "Transport", "Threads", "ValueWords", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	config := util.GetClientConfig()

	var rowErr error
	registry.Each(func(test string, i interface{}) {
		timer, ok := i.(metrics.Timer)
		if !ok || rowErr != nil {
			return
		}
		ps := timer.Percentiles(perfPercentiles)

		row := []string{
			test,
			strconv.FormatInt(timer.Count(), 10),
			fmt.Sprintf("%.0f", timer.Mean()),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", ps[2]),
			strconv.FormatInt(timer.Max(), 10),
			config.Transport.Endpoint,
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfValueWords),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			rowErr = fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	})

	return rowErr
}
