package main

import (
	"os"
)

func main() {
	cmd, opts := newRootCmd()
	if err := execute(cmd, opts); err != nil {
		os.Exit(1)
	}
}
