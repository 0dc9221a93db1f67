// cmd/kbconv/main.go
//
// kbconv maintains the configuration image of an AT/XT keyboard protocol
// converter and runs its programming-mode console.
package main

import (
	"os"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
