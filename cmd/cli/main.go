package main

import "github.com/confguard/confguard/internal/cli"

func main() {
	cli.Execute()
}
