// Command operators is the structs example written with Add and Plus, the
// stand-ins for + on vector+vector and vector+scalar.
//
// Run:
//
//	go run ./vectors/operators
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

	_ = vec3.Add(point1, point2)
	_ = vec3.Plus(point1, 1.0)

	fmt.Fprintf(w, "point 1 is: %#v\n", point1)
}
