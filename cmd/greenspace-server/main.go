package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/grest/greenspace-server/pointservice"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	if err := pointservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
