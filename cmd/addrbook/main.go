package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/addrbook/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	root, closeApp := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	err := root.ExecuteContext(ctx)
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	v := os.Getenv("ADDRBOOK_DEBUG")
	return v == "1" || strings.EqualFold(v, "true")
}
