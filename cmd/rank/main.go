// Command rank applies the hazardous-asteroid selection to a saved NeoWs feed
// document and prints the result as JSON. It makes no network calls.
//
// Usage:
//
//	go run ./cmd/rank -file testdata/feed.json
//	curl -s "$NEOWS_URL" | go run ./cmd/rank -limit 5
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
)

func main() {
	file := flag.String("file", "", "path to a NeoWs feed JSON document (stdin when empty or \"-\")")
	limit := flag.Int("limit", domain.MaxResults, "maximum number of asteroids to print")
	flag.Parse()

	if err := run(*file, *limit, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rank: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, limit int, stdin io.Reader, stdout io.Writer) error {
	if limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", limit)
	}

	in := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var feed domain.FeedResponse
	if err := json.NewDecoder(in).Decode(&feed); err != nil {
		return &domain.ParseError{Err: err}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.SelectTopHazardous(feed, limit))
}
