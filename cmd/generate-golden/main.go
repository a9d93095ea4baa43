// Command generate-golden writes the trajectory counters used by the engine
// tests, computed with the step-by-step math/big reference engine.
//
//	go run ./cmd/generate-golden -out internal/collatz/testdata/golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/agbru/collatz/internal/collatz"
)

// random2048 is a fixed 2048-bit value with no particular structure.
const random2048 = "d3bdf64dc34797c42393446abe564059b9ae5c8f1fca7da27744001a6aa45fe0a0f09780597538cbc54be01c0ef8e010faaced226972f683de11ee00366dadc088177abd25fbab1ba70b967adf354788d4dd79d3b5834f4cecb736d877f1caf0ba49c19fc0a9c8beb070e38434d57084ddfa7fa4ffe9ec11c63d5f77bb3a6a06131db61884f42b4b548a84a5b43d43188b3890644f3d4e7b37d72e4af69787709d9b532aba4e6c3686ff0de26a7698065aab0a377f90ade7bc38d756d0055979a2da95a83ec33dd6887e840043e58844c2354e2bb7740a63c1d8fac168fb90d7b938451ee325faa633406bc44dc2a627940eee3cba6f875c2e84496e7857dd86"

type goldenFile struct {
	Generator string       `json:"generator"`
	Cases     []goldenCase `json:"cases"`
}

type goldenCase struct {
	Name  string `json:"name"`
	Input string `json:"input"`
	Mul3  uint64 `json:"mul3"`
	Div2  uint64 `json:"div2"`
	Total uint64 `json:"total"`
}

type source struct {
	name  string
	value *big.Int
	hex   bool
}

func small(v int64) *big.Int { return big.NewInt(v) }

func pow(base, exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
}

func add(x *big.Int, y int64) *big.Int {
	return new(big.Int).Add(x, big.NewInt(y))
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex literal")
	}
	return v
}

// sources lists the golden inputs: small values with well-known
// trajectories, word boundaries, and a few large values.
func sources() []source {
	return []source{
		{"one", small(1), false},
		{"two", small(2), false},
		{"three", small(3), false},
		{"six", small(6), false},
		{"seven", small(7), false},
		{"nine", small(9), false},
		{"27", small(27), false},
		{"97", small(97), false},
		{"871", small(871), false},
		{"77031", small(77031), false},
		{"837799", small(837799), false},
		{"2^64-1", add(pow(2, 64), -1), true},
		{"2^64", pow(2, 64), true},
		{"2^100-1", add(pow(2, 100), -1), true},
		{"10^30+1", add(pow(10, 30), 1), false},
		{"2^200-1", add(pow(2, 200), -1), true},
		{"3^200", pow(3, 200), false},
		{"2^256+1", add(pow(2, 256), 1), true},
		{"2^1000-1", add(pow(2, 1000), -1), true},
		{"random-2048", mustHex(random2048), true},
		{"2^4096-1", add(pow(2, 4096), -1), true},
	}
}

// generate computes the counters of every source.
func generate(srcs []source) goldenFile {
	g := goldenFile{Generator: "generate-golden", Cases: make([]goldenCase, 0, len(srcs))}
	for _, s := range srcs {
		input := s.value.String()
		if s.hex {
			input = "0x" + s.value.Text(16)
		}
		st := collatz.ReferenceRun(s.value)
		g.Cases = append(g.Cases, goldenCase{
			Name:  s.name,
			Input: input,
			Mul3:  st.Mul3,
			Div2:  st.Div2,
			Total: st.Total(),
		})
	}
	return g
}

func encode(g goldenFile) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func main() {
	out := flag.String("out", "internal/collatz/testdata/golden.json", "output path")
	flag.Parse()

	data, err := encode(generate(sources()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "!!! encoding golden data: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "!!! %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cases to %s\n", len(sources()), *out)
}
