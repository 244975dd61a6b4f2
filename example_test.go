package huffzip_test

import (
	"fmt"

	"github.com/chronos-tachyon/huffzip"
)

func Example() {
	packed, err := huffzip.Compress([]byte("aaabbc"))
	if err != nil {
		panic(err)
	}
	fmt.Printf("% x\n", packed)

	unpacked, err := huffzip.Decompress(packed)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s\n", unpacked)

	// Output:
	// 03 00 00 00 61 01 00 62 02 c0 63 02 80 07 1f 00
	// aaabbc
}

func ExampleNewEncoder() {
	e, err := huffzip.NewEncoder(huffzip.CountFrequencies([]byte("aaabbc")))
	if err != nil {
		panic(err)
	}
	for _, entry := range e.Table() {
		fmt.Printf("%c %s\n", entry.Symbol, entry.Code)
	}

	// Output:
	// a "0"
	// b "11"
	// c "10"
}
