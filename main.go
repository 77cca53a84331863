package main

import "github.com/maxvaer/dfuzz/cmd"

func main() {
	cmd.Execute()
}
