package main

import (
	"os"

	"github.com/lworkltd/jms-sender/sender"
)

func main() {
	os.Exit(sender.New(os.Stdout, os.Stderr).Run(os.Args[1:]))
}
