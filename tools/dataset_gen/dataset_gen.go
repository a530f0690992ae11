package main

// dataset_gen.go generates deterministic key datasets for standalone
// benchmarking of automap (outside `go test`). It emits a flat,
// little-endian int64 buffer — the exact on-disk shape a typed-array
// fast-path benchmark reads back with a single os.ReadFile plus an
// unsafe reinterpret, so no parsing cost pollutes the benchmark.
//
// Usage:
//   go run ./tools/dataset_gen -n 1000000 -dist=zipf -seed=42 -out keys.bin
//
// Flags:
//   -n       number of keys to generate (default 1e6)
//   -dist    distribution: "uniform", "zipf", or "sequential" (default uniform)
//   -zipfs   Zipf s parameter (>1)  (default 1.2)
//   -zipfv   Zipf v parameter (>=1) (default 1.0)
//   -seed    RNG seed (default current time)
//   -out     output file (required; binary, not stdout — see -text)
//   -text    emit newline-separated decimal text instead of binary
//
// The generated sequence is always deduplicated before being written,
// since automap construction rejects duplicate keys outright — a zipf
// distribution run through the generic path unchanged would mostly
// measure duplicate rejection, not insertion.
//
// © 2025 automap authors. MIT License.

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

func main() {
	var (
		n       = flag.Int("n", 1_000_000, "number of keys to generate")
		dist    = flag.String("dist", "uniform", "distribution: uniform, zipf, or sequential")
		zipfS   = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = flag.String("out", "", "output file (required)")
		text    = flag.Bool("text", false, "emit newline-separated decimal text instead of binary")
	)
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "missing -out")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = rnd.Uint64
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, ^uint64(0))
		gen = z.Uint64
	case "sequential":
		var next uint64
		gen = func() uint64 {
			v := next
			next++
			return v
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	seen := make(map[uint64]struct{}, *n)
	keys := make([]int64, 0, *n)
	for len(keys) < *n {
		v := gen()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		keys = append(keys, int64(v))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create file:", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	if *text {
		for _, k := range keys {
			fmt.Fprintln(w, k)
		}
		return
	}

	if err := binary.Write(w, binary.LittleEndian, keys); err != nil {
		fmt.Fprintln(os.Stderr, "write error:", err)
		os.Exit(1)
	}
}
