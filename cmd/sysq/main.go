package main

import (
	"github.com/Paintersrp/sysq/internal/cli"
	"github.com/Paintersrp/sysq/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
