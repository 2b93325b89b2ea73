package main

import "content-catalog/cmd"

func main() {
	cmd.Execute()
}
