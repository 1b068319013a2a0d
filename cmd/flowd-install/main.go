package main

import "github.com/flowd-dev/flowd-installer/cmd/flowd-install/cmd"

func main() {
	cmd.Execute()
}
