package main

import "github.com/netpulse-dev/netpulse/cmd"

func main() {
	cmd.Execute()
}
