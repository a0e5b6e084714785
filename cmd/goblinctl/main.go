package main

import "github.com/afterclass/commitgoblin/cmd"

func main() {
	cmd.Execute()
}
