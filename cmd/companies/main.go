// Command companies searches the company registry from the terminal.
//
//	companies search fabrica --format json
//	companies tui
package main

import "os"

func main() {
	os.Exit(Execute())
}
