package main

import (
	"github.com/mcoot/wordlebot-go/internal/cli"
)

func main() {
	cli.Execute()
}
