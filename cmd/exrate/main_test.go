package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"-h"}, &out))
	assert.Empty(t, out.String())
}

func TestRun_BadConfig(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run(nil, &out), "no fuel")
	assert.Equal(t, 2, run([]string{"-fuel", "10"}, &out))
	assert.Empty(t, out.String())
}

func TestRun_PrintsRates(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-fuel", "10:0.5", "-fuel", "20:0.5", "-workers", "1", "-metrics"}, &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "expected=15 harmonic=13.33")
}

func TestRun_SentinelOnFailure(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"-fuel", "10:1", "-samples", "51"}, &out))
	assert.Equal(t, "expected=0 harmonic=0\n", out.String())

	out.Reset()
	assert.Equal(t, 1, run([]string{"-fuel", "1:0.5", "-fuel", "2:0.5", "-samples", "2", "-depths", "2", "-max-cells", "16"}, &out))
	assert.Equal(t, "expected=-1 harmonic=-1\n", out.String())
}
