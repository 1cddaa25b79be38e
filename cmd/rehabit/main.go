package main

import "github.com/movi008/rehabit/internal/cli"

func main() {
	cli.Execute()
}
