package main

import (
	"os"

	"github.com/takapay/takapay/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
