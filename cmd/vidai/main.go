package main

import "github.com/vidai-tools/vidai/internal/cli"

func main() {
	cli.Main()
}
