package main

import "github.com/forPelevin/reelplan/internal/cli"

func main() {
	cli.Main()
}
