package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	assert.True(t, called)

	called = false
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("test %d", 1) })
	assert.False(t, called)
}

func TestSetOutput(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf bytes.Buffer
	SetOutput(&buf, "scan ")
	Logf("iteration %d failed", 7)

	assert.Contains(t, buf.String(), "scan ")
	assert.Contains(t, buf.String(), "iteration 7 failed")
}

func TestLogf_DefaultIsMuted(t *testing.T) {
	assert.NotNil(t, Logf)
	assert.NotPanics(t, func() { Logf("nothing to see") })
}
