//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed. Set ONYX_CONFIG to pass a config file.
func (Run) Engine() error {
	args := []string{"run", "main.go"}
	if cfg := os.Getenv("ONYX_CONFIG"); cfg != "" {
		args = append(args, "-config", cfg)
	}
	fmt.Println("Run engine...")
	_, err := goTool(args...).withEnv("CGO_ENABLED", "1").streaming().run()
	return err
}

// Runs the unit tests with the race detector. The platform and renderer
// fakes need no display.
func (Run) Tests() error {
	_, err := goTool("test", "-race", "./...").withEnv("CGO_ENABLED", "1").streaming().run()
	return err
}
