package main

import "portlisten/cmd"

func main() {
	cmd.Execute()
}
