package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sandeepkv93/cozy/internal/cli"
)

func main() {
	var c cli.CLI
	kctx := kong.Parse(&c,
		kong.Name("cozy"),
		kong.Description("A cozy daily habit and exercise tracker."),
		kong.UsageOnError(),
	)
	if err := cli.Run(context.Background(), kctx, &c); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
