// Seed program: writes a load file of random non-zero keys and values.
// Run: go run ./cmd/seed [-n 10000] [-seed 1] [-o movie.del]
// Then in the REPL: LOAD movie FROM 'movie.del' WITH INDEX
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
)

var titles = []string{
	"Die Hard", "Heat", "Alien", "Brazil", "Fargo", "Jaws", "Vertigo",
	"Casablanca", "Psycho", "Rocky", "Up", "Memento", "Seven", "Ran",
}

func main() {
	n := flag.Int("n", 10000, "number of tuples")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("o", "movie.del", "output file")
	maxKey := flag.Int("max-key", 1000000, "keys are drawn from [-max-key, max-key] without 0")
	flag.Parse()

	if *maxKey < 1 {
		log.Fatalf("max-key must be >= 1")
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := bufio.NewWriter(f)
	for i := 0; i < *n; i++ {
		key := 0
		for key == 0 {
			key = rng.Intn(2*(*maxKey)+1) - *maxKey
		}
		title := titles[rng.Intn(len(titles))]
		fmt.Fprintf(w, "%d, '%s %d'\n", key, title, rng.Intn(100))
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	info, err := f.Stat()
	if err != nil {
		log.Fatalf("stat %s: %v", *out, err)
	}
	fmt.Printf("wrote %s tuples to %s (%s)\n", humanize.Comma(int64(*n)), *out, humanize.Bytes(uint64(info.Size())))
}
