package main

import "quality-analyzer/src/handler/cli"

func main() {
	cli.Run()
}
