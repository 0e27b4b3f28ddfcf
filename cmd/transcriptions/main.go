package main

import (
	"fmt"
	"os"

	"github.com/nocdn/transcriptions-ssr/cmd/transcriptions/cmd"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
