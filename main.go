package main

import (
	"os"

	"github.com/go-permafrost/permafrost/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
