package main

import "github.com/kamal-hamza/adir/cmd"

func main() {
	cmd.Execute()
}
