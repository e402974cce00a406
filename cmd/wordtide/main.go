package main

import (
	"github.com/wordtide/wordtide-go/internal/cli"
)

func main() {
	cli.Execute()
}
