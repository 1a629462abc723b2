package main

import "iconcompare/cmd"

func main() {
	cmd.Execute()
}
