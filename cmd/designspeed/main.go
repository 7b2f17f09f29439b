// Command designspeed estimates design wind speeds from a gust sample file
// without running the service.
//
// Usage:
//
//	go run ./cmd/designspeed estimate --method gumbel --file sample.json --periods 50,700
//	go run ./cmd/designspeed methods
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// DesignSpeedApp is the offline estimation CLI.
var DesignSpeedApp = cli.App{
	Name:      "designspeed",
	HelpName:  "designspeed",
	Usage:     "tabulate design wind speeds from extreme gust samples",
	ArgsUsage: "<command>",
	Commands: []*cli.Command{
		&EstimateCommand,
		&MethodsCommand,
	},
}

func main() {
	if err := DesignSpeedApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
