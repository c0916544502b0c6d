// Package display shows borrowing versus moving a value in Go, for any value
// that can be rendered as text.
//
// Go has no ownership transfer: passing a pointer shares the caller's value
// (a borrow), passing the value hands the callee its own copy (a move that
// leaves the original usable).
package display

import (
	"fmt"
	"io"
	"strconv"
)

// Display is the capability "can be rendered as text".
type Display interface {
	fmt.Stringer
}

// Text is a string that satisfies Display.
type Text string

func (t Text) String() string { return string(t) }

// Number is an int that satisfies Display.
type Number int

func (n Number) String() string { return strconv.Itoa(int(n)) }

// Borrow prints v through a pointer; the caller keeps the value.
func Borrow[T Display](w io.Writer, v *T) {
	fmt.Fprintf(w, "borrowed pope says: %s\n", *v)
}

// Move prints v after it was copied into the call.
func Move[T Display](w io.Writer, v T) {
	fmt.Fprintf(w, "moved pope says: %s\n", v)
}

// Walkthrough borrows v, prints it from the caller, moves it, and prints it
// from the caller again. The last line works because the move was a copy.
func Walkthrough[T Display](w io.Writer, v T) {
	Borrow(w, &v)
	fmt.Fprintf(w, "from main: %s\n", v)

	Move(w, v)
	fmt.Fprintf(w, "from main: %s\n", v)
}
