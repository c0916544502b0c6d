package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The sums are discarded, so point1 prints as declared.
func TestOutput(t *testing.T) {
	var sb strings.Builder
	run(&sb)

	assert.Equal(t, "point 1 is: Vec3 { x: 1.0, y: 1.0, z: 1.0 }\n", sb.String())
}
