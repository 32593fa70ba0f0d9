// main is the entry point for the loganalyzer CLI.
package main

import (
	"github.com/maniprasoon/Log-File-Analyzer/cmd"
	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
