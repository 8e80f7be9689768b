package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdedit/pkg/preview"
)

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"empty", "   \n", ""},
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go", "package main\n\nfunc main() {}\n", "go"},
		{"python", "def foo():\n    pass\n", "python"},
		{"html", "<!DOCTYPE html>\n<html></html>", "html"},
		{"json", `{"key": "value"}`, "json"},
		{"dockerfile", "FROM alpine:3\nRUN apk add git", "dockerfile"},
		{"sql", "select * from users;", "sql"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"javascript", "const x = () => 42;", "javascript"},
		{"yaml", "name: test\nitems:\n  - one\n", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preview.DetectLanguage(tt.code))
		})
	}
}

func BenchmarkDetectLanguage(b *testing.B) {
	code := "def hello():\n    print(\"Hello\")\n\nif __name__ == \"__main__\":\n    hello()\n"
	for b.Loop() {
		preview.DetectLanguage(code)
	}
}
