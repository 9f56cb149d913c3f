// Package generator produces the exhaustive, ordered, lazy sequence of
// candidate identifiers for a scan.
//
// The sequence is the full Cartesian product of the alphabet repeated
// `length` times, enumerated as a fixed-radix counter so the full space is
// never materialized. A start offset maps to a direct rank computation:
//
//	gen, err := generator.New(3, config.DefaultAlphabet, "AB_")
//	for {
//		id, ok := gen.Next()
//		if !ok {
//			break
//		}
//		// check id
//	}
package generator
