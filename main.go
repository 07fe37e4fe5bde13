package main

import "player-registry/cli"

func main() {
	cli.Execute()
}
