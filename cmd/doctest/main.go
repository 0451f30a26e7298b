package main

import "github.com/mvp-joe/doctest/internal/cli"

func main() {
	cli.Execute()
}
