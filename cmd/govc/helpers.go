package main

import (
	"fmt"
	"io"

	git "govc"
)

// loadRepository opens the repository the global flags point at
func loadRepository(cfg *globalFlags) (*git.Repository, error) {
	r, err := git.OpenRepositoryWithOptions(cfg.C.String(), git.OpenOptions{
		IsBare: cfg.Bare,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open repository: %w", err)
	}
	return r, nil
}

func fprintln(quiet bool, out io.Writer, msg ...interface{}) {
	if !quiet {
		fmt.Fprintln(out, msg...)
	}
}

func fprintf(quiet bool, out io.Writer, format string, a ...interface{}) {
	if !quiet {
		fmt.Fprintf(out, format, a...)
	}
}
