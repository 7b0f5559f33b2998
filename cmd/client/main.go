package main

import "teamfinder/cmd/client/cmd"

func main() {
	cmd.Execute()
}
