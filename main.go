package main

import "github.com/papapumpkin/somersault/cmd"

func main() {
	cmd.Execute()
}
