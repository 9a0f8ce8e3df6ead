//go:build js && wasm

package main

import (
	"testing"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/stretchr/testify/assert"
)

// Проверяется сборкой под GOOS=js GOARCH=wasm; DOM здесь не нужен.
func TestDomDisplayIsDisplay(t *testing.T) {
	var d checker.Display = &domDisplay{}
	assert.NotNil(t, d)

	b := &Binding{}
	b.Release()
	assert.Empty(t, b.listeners)
}
