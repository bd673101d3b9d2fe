package main

import "github.com/devbush/vid2srt/internal/adapters/cli"

func main() {
	cli.Execute()
}
