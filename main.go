package main

import "github.com/VoxDroid/recipr/cmd"

func main() {
	cmd.Execute()
}
