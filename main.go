package main

import "github.com/xvierd/pomotui/cmd"

func main() {
	cmd.Execute()
}
