// Package main is the entry point for the annotator application
package main

import (
	"github.com/clonobrowser/annotator/cmd"
)

func main() {
	cmd.Execute()
}
