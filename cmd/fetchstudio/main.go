package main

import (
	"fmt"
	"os"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
