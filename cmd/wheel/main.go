package main

import "github.com/OpenTraceLab/horizontalwheel/cmd/wheel/cmd"

func main() {
	cmd.Execute()
}
