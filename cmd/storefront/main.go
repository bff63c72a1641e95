package main

import "github.com/mcoot/gamestore/internal/cli"

func main() {
	cli.Execute()
}
