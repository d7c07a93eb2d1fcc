package main

import "musicalchairs/cmd"

func main() {
	cmd.Execute()
}
