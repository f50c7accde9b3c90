// Command isdload loads NOAA Integrated Surface Data files into a document store.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
