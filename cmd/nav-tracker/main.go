package main

import "github.com/pfrederiksen/nav-tracker/internal/cli"

func main() {
	cli.Execute()
}
