// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// generatedFiles are checked in and must match what Generate produces.
var generatedFiles = []string{"internal/shell/command_string.go"}

// Lint regenerates code, fails if a generated file drifted from the
// checked-in copy, then runs golangci-lint.
func Lint() error {
	mg.Deps(Generate)
	args := append([]string{"diff", "--exit-code", "--"}, generatedFiles...)
	if err := sh.RunV("git", args...); err != nil {
		return fmt.Errorf("generated files are stale, commit the output of mage generate: %w", err)
	}
	return sh.RunV(binLint, "run", "./...")
}
