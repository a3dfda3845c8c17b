package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

func main() {
	runDuration := flag.Duration("run-duration", time.Second*10, "How long to run the test")
	concurrency := flag.Int("c", 4, "How many concurrent workers to run")
	rpm := flag.Int("rpm", 60, "Rate of requests per minute per worker")
	serverURLString := flag.String("url", "http://localhost:8000/", "Visit recorder URL to use for requests")

	flag.Parse()

	serverURL, err := url.Parse(*serverURLString)
	if err != nil {
		panic(err)
	}

	runTest(*runDuration, *concurrency, *rpm, serverURL)
}

func runTest(runDuration time.Duration, concurrency int, rpm int, serverURL *url.URL) {
	ctx, cancel := context.WithTimeout(context.Background(), runDuration)
	defer cancel()

	var wg sync.WaitGroup

	resultChannel := make(chan int, 1024)
	results := map[int]int{}
	resultsDone := make(chan struct{})

	for range concurrency {
		wg.Go(func() { runWorker(ctx, resultChannel, rpm, serverURL) })
	}

	go func() {
		displayInterval := time.Minute
		lastDisplay := time.Now()

		for status := range resultChannel {
			results[status]++
			if time.Since(lastDisplay) > displayInterval {
				displayResults(results)
				lastDisplay = time.Now()
			}
		}

		close(resultsDone)
	}()

	wg.Wait()
	close(resultChannel)
	<-resultsDone

	displayResults(results)
	checkVisitLog(serverURL, results[http.StatusOK])
}

func displayResults(results map[int]int) {
	fmt.Println("Results at", time.Now())
	for status, count := range results {
		fmt.Printf("- HTTP %d: %d\n", status, count)
	}
	fmt.Println()
}

func runWorker(ctx context.Context, resultChannel chan<- int, rpm int, serverURL *url.URL) {
	ticker := time.NewTicker(time.Minute / time.Duration(rpm))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			status, _, err := visit(ctx, serverURL)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				panic(err)
			}

			resultChannel <- status
		}
	}
}

// checkVisitLog makes one final visit and, when the server renders plain
// text, confirms that the log holds at least every successful visit.
func checkVisitLog(serverURL *url.URL, recorded int) {
	status, body, err := visit(context.Background(), serverURL)
	if err != nil || status != http.StatusOK {
		fmt.Println("Final visit failed", "status:", status, "err:", err)
		return
	}

	if strings.HasPrefix(body, "<") {
		fmt.Println("HTML output, skipping visit log check")
		return
	}

	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	logged := len(lines) - 1
	fmt.Printf("Visit log holds %d entries for %d successful visits\n", logged, recorded+1)
	if logged < recorded+1 {
		fmt.Println("Visit log is missing entries")
	}
}

func visit(ctx context.Context, serverURL *url.URL) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL.String(), nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}

	return resp.StatusCode, string(body), nil
}
