// Command borrow passes a string to one function by pointer (a borrow) and to
// another by value (a move), printing it from main after each call.
//
// Run:
//
//	go run ./ownership/borrow
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	run(os.Stdout)
}

func run(w io.Writer) {
	jp2 := "Jan Paweł drugi jest największym polakiem"

	borrowPope(w, &jp2)
	fmt.Fprintf(w, "from main: %s\n", jp2)

	movePope(w, jp2)

	// Still usable: movePope got its own copy of the string header.
	fmt.Fprintf(w, "from main: %s\n", jp2)
}

func borrowPope(w io.Writer, pope *string) {
	fmt.Fprintf(w, "borrowed pope says: %s\n", *pope)
}

func movePope(w io.Writer, pope string) {
	fmt.Fprintf(w, "moved pope says: %s\n", pope)
}
