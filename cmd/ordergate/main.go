package main

import (
	"fmt"
	"os"

	"ordergate/cmd/ordergate/cmd"
	"ordergate/pkg/clierr"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
