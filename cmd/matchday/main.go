package main

import "github.com/footydigest/matchday/internal/cli"

func main() {
	cli.Execute()
}
