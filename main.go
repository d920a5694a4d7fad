package main

import "github.com/subnetear/subnetear/internal/cli"

func main() {
	cli.Execute()
}
