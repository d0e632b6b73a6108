package main

import "github.com/mvp-joe/srcnav/internal/cli"

func main() {
	cli.Execute()
}
