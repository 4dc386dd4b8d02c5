package main

import "github.com/Yates-Labs/clog/cmd"

func main() {
	cmd.Execute()
}
