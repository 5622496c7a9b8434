//go:build mage

/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "imagepipe"
	mainPkg    = "./cmd/imagepipe"
	schemaPath = "schema/imagepipe-pipelines.json"
)

// repoRoot is the parent of the magefiles directory.
func repoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if filepath.Base(wd) == "magefiles" {
		return filepath.Dir(wd), nil
	}
	return wd, nil
}

func inRepoRoot() error {
	root, err := repoRoot()
	if err != nil {
		return fmt.Errorf("failed to find repo root: %w", err)
	}
	return os.Chdir(root)
}

// InstallDeps tidies the module dependencies.
func InstallDeps() error {
	if err := inRepoRoot(); err != nil {
		return err
	}
	fmt.Println(color.YellowString("Installing dependencies."))
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return fmt.Errorf("failed to tidy modules: %w", err)
	}
	return nil
}

// RunPreCommit runs all pre-commit hooks locally.
func RunPreCommit() error {
	mg.Deps(InstallDeps)

	if _, err := sh.Output("pre-commit", "--version"); err != nil {
		return fmt.Errorf("pre-commit is not installed, please install it " +
			"with the following command: `python3 -m pip install pre-commit`")
	}

	fmt.Println(color.YellowString("Running all pre-commit hooks locally."))
	return sh.RunV("pre-commit", "run", "--all-files", "--show-diff-on-failure")
}

// RunTests runs the unit tests with the race detector.
func RunTests() error {
	if err := inRepoRoot(); err != nil {
		return err
	}
	fmt.Println(color.YellowString("Running unit tests."))
	if err := sh.RunV("go", "test", "-race", "-count=1", "./..."); err != nil {
		return fmt.Errorf("failed to run unit tests: %w", err)
	}
	return nil
}

// Compile builds the imagepipe binary into bin/. GOOS and GOARCH default to
// the current platform.
//
// Example usage:
//
// ```go
// GOOS=linux GOARCH=arm64 mage compile
// ```
func Compile() error {
	if err := inRepoRoot(); err != nil {
		return err
	}

	goos := os.Getenv("GOOS")
	if goos == "" {
		goos = runtime.GOOS
	}
	goarch := os.Getenv("GOARCH")
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	out := filepath.Join("bin", fmt.Sprintf("%s-%s-%s", binaryName, goos, goarch))
	fmt.Println(color.YellowString("Compiling %s for %s/%s.", binaryName, goos, goarch))

	env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
	if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, mainPkg); err != nil {
		return fmt.Errorf("failed to compile %s: %w", binaryName, err)
	}
	return nil
}

// GenerateSchema writes the JSON schema of pipeline documents to schema/.
func GenerateSchema() error {
	if err := inRepoRoot(); err != nil {
		return err
	}

	if err := sh.RunV("go", "run", "./cmd/schema-gen", "-o", schemaPath); err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}
	return nil
}
