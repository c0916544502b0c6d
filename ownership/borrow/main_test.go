package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutput(t *testing.T) {
	var sb strings.Builder
	run(&sb)

	want := "borrowed pope says: Jan Paweł drugi jest największym polakiem\n" +
		"from main: Jan Paweł drugi jest największym polakiem\n" +
		"moved pope says: Jan Paweł drugi jest największym polakiem\n" +
		"from main: Jan Paweł drugi jest największym polakiem\n"
	assert.Equal(t, want, sb.String())
}
