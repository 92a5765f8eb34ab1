package main

import (
	"flag"
	"fmt"
	"os"

	npy "github.com/Near-ring/npy-utils"
	"github.com/davecgh/go-spew/spew"
)

func dumpdata(data []byte, max int) {
	if max > len(data) {
		max = len(data)
	}
	for i := 0; i < max; i += 16 {
		end := i + 16
		if end > max {
			end = max
		}
		for j := i; j < end; j++ {
			fmt.Printf("%2.2x ", data[j])
		}
		fmt.Println()
	}
}

func describe(path string, hdr npy.Header, verbose bool) {
	fmt.Printf("%s: dtype %s, shape %v, fortran_order %t, %d payload bytes\n",
		path, hdr.Kind.Dtype(), hdr.Shape, hdr.Fortran, hdr.NumBytes())
	if verbose {
		spew.Dump(hdr)
	}
}

func printFirst(arr *npy.Array, n int) {
	switch arr.Kind {
	case npy.Int8:
		printVals(npy.AsSlice[int8](arr), n)
	case npy.Int16:
		printVals(npy.AsSlice[int16](arr), n)
	case npy.Int32:
		printVals(npy.AsSlice[int32](arr), n)
	case npy.Int64:
		printVals(npy.AsSlice[int64](arr), n)
	case npy.Uint8:
		printVals(npy.AsSlice[uint8](arr), n)
	case npy.Uint16:
		printVals(npy.AsSlice[uint16](arr), n)
	case npy.Uint32:
		printVals(npy.AsSlice[uint32](arr), n)
	case npy.Uint64:
		printVals(npy.AsSlice[uint64](arr), n)
	case npy.Float32:
		printVals(npy.AsSlice[float32](arr), n)
	case npy.Float64:
		printVals(npy.AsSlice[float64](arr), n)
	}
}

func printVals[T npy.Element](vals []T, n int) {
	if n > len(vals) {
		n = len(vals)
	}
	fmt.Printf("First %d elements: %v\n", n, vals[:n])
}

func inspect(path string, verbose bool, nelems, nhex int) error {
	if nelems == 0 && nhex == 0 {
		// Header only, no payload read.
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		hdr, err := npy.ParseHeader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		describe(path, hdr, verbose)
		return nil
	}

	arr, err := npy.Load(path)
	if err != nil {
		return err
	}
	describe(path, arr.Header, verbose)
	if nhex > 0 {
		fmt.Println("Data:")
		dumpdata(arr.Bytes(), nhex)
	}
	if nelems > 0 {
		printFirst(arr, nelems)
	}
	return nil
}

func main() {
	verbose := flag.Bool("v", false, "dump the parsed header in full")
	nelems := flag.Int("elems", 0, "print the first N elements as typed values")
	nhex := flag.Int("hex", 0, "hex dump the first N payload bytes")
	flag.Usage = func() {
		fmt.Println("npyinspect, a program to describe .npy files and preview their payload")
		fmt.Println("Usage: npyinspect [flags] file.npy ...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		if err := inspect(path, *verbose, *nelems, *nhex); err != nil {
			fmt.Println("inspect returned error: ", err)
			os.Exit(1)
		}
	}
}
