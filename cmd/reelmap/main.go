package main

import "github.com/forPelevin/reelmap/internal/cli"

func main() {
	cli.Main()
}
