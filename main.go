package main

import (
	"github.com/xandnet/peerwatch/cmd"
)

func main() {
	// Execute command-line interface; should be the last call in main()
	cmd.Execute()
}
