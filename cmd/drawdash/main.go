package main

import (
	"github.com/drawdash/drawdash/internal/cli"
)

func main() {
	cli.Execute()
}
