package main

import (
	"os"

	"github.com/wonny/valuecalc/cmd/valuecalc/commands"
)

// main is the entry point for the valuecalc CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/valuecalc [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
