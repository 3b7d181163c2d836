package main

import (
	"github.com/computeadvisor/advisor/pkg/cli"
)

func main() {
	cli.Execute()
}
