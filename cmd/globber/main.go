package main

import "github.com/bethropolis/globber/internal/cli"

func main() {
	cli.Execute()
}
