//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

// goCommand is one invocation of the go tool.
type goCommand struct {
	args   []string
	env    []string
	stream bool
}

func goTool(args ...string) *goCommand {
	return &goCommand{args: args}
}

// streaming mirrors the output to the terminal while it runs.
func (c *goCommand) streaming() *goCommand {
	c.stream = true
	return c
}

func (c *goCommand) withEnv(key, value string) *goCommand {
	c.env = append(c.env, key+"="+value)
	return c
}

func (c *goCommand) run() (string, error) {
	fmt.Printf("Executing: go %s\n", strings.Join(c.args, " "))
	cmd := exec.Command("go", c.args...)
	cmd.Env = append(os.Environ(), c.env...)

	stream := c.stream || mg.Verbose()

	var out bytes.Buffer
	if stream {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}
	if err := cmd.Run(); err != nil {
		if !stream {
			fmt.Println("... failed command output:")
			fmt.Println(out.String())
		}
		return "", fmt.Errorf("go %s: %w", c.args[0], err)
	}
	return out.String(), nil
}
