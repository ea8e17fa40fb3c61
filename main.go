package main

import (
	"fmt"
	"os"

	"github.com/wanli28/ConnectionKit/commands"
	"github.com/wanli28/ConnectionKit/sitefs"
)

func main() {
	if err := commands.NewRootCommand(sitefs.Os).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
