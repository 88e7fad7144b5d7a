//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the testbed binary into bin/.
func (Build) Engine() error {
	if _, err := goTool("mod", "download").run(); err != nil {
		return err
	}
	// GLFW and the OpenGL loader are cgo packages.
	_, err := goTool("build", "-o", "bin/onyx", ".").withEnv("CGO_ENABLED", "1").streaming().run()
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := goTool("vet", "./...").streaming().run()
	return err
}
