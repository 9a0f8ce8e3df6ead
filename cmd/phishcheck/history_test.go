package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "abc", max: 10, want: "abc"},
		{name: "ascii", in: "abcdefghij", max: 6, want: "abc..."},
		{name: "multibyte", in: "Ошибка модели: таймаут", max: 9, want: "Ошибка..."},
		{name: "tiny limit", in: "Ошибка", max: 2, want: "Ош"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateString(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTableCell(t *testing.T) {
	assert.Equal(t, `http://a/?x=1\|2`, tableCell("http://a/?x=1|2"))
	assert.Equal(t, "http://a/\\`b\\`", tableCell("http://a/`b`"))
	assert.Equal(t, `a\\b`, tableCell(`a\b`))
	assert.Equal(t, "line one line two", tableCell("line one\nline two"))
}
