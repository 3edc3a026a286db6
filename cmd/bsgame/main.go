package main

import (
	"github.com/mcoot/battleshipgame-go/internal/cli"
)

func main() {
	cli.Execute()
}
