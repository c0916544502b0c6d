// Command generic repeats the borrow / move walkthrough with functions that
// accept any value that can be rendered as text, here an int.
//
// Run:
//
//	go run ./ownership/generic
package main

import (
	"io"
	"os"

	"github.com/marcodamonte/ownership/ownership/display"
)

func main() {
	run(os.Stdout)
}

func run(w io.Writer) {
	funnyNumber := display.Number(2137)
	display.Walkthrough(w, funnyNumber)
}
