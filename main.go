package main

import (
	"os"

	"github.com/CurioCloud-Team/CurioCloudBackendN/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
