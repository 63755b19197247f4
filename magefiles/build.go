// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the storeroom project using Mage.
//
// Usage:
//
//	mage build       Compile storeroom binary to bin/
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage test:cover  Run tests and write coverage.out
//	mage test:golden Regenerate golden files
//	mage generate    Run go generate (stringer)
//	mage lint        Check generated files, then run golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install storeroom to GOPATH/bin
//	mage stats       Print Go LOC counts
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "storeroom"
	binaryDir  = "bin"
	cmdDir     = "./cmd/storeroom"
	versionVar = "github.com/mesh-intelligence/storeroom/internal/cli.Version"
)

// Build compiles the storeroom binary to bin/. STOREROOM_VERSION, when set,
// is stamped into the version command.
func Build() error {
	mg.Deps(Generate)
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := strings.TrimSpace(os.Getenv("STOREROOM_VERSION")); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Generate runs go generate for the stringer-backed enums.
func Generate() error {
	return sh.RunV(binGo, "generate", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
