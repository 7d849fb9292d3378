package main

import "github.com/Alturino/restaurant/cmd"

func main() {
	cmd.Start()
}
