package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/ssmith129/Medico-2.0-sub000/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
