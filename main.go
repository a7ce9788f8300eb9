package main

import "github.com/ethanolivertroy/depfix/cmd"

func main() {
	cmd.Execute()
}
