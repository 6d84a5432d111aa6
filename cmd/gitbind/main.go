// Package main provides the gitbind command line tool. It inspects
// repositories through the git binding and explains native error codes.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
