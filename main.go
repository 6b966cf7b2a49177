package main

import "resource-manager/cmd"

func main() {
	cmd.Execute()
}
