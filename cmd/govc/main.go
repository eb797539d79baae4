// Command govc is a from-scratch, pure Go reimplementation of git's
// plumbing and a handful of porcelain commands.
package main

import (
	"fmt"
	"os"

	"govc/env"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	root := newRootCmd(cwd, env.NewFromOs())
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
