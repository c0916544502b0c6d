// Command structs adds a vector and a scalar to a point through methods,
// discards both sums and prints the original point, which values keep
// untouched.
//
// Run:
//
//	go run ./vectors/structs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/marcodamonte/ownership/vectors/vec3"
)

func main() {
	run(os.Stdout)
}

func run(w io.Writer) {
	point1 := vec3.Vec3[float32]{X: 1.0, Y: 1.0, Z: 1.0}
	point2 := vec3.Vec3[float32]{X: 1.0, Y: 2.0, Z: 3.0}

	_ = point1.AddVec(point2)
	_ = point1.AddScalar(1.0)

	fmt.Fprintf(w, "point 1 is: %#v\n", point1)
}
