package main

import "github.com/deploymenttheory/go-cryptstatus/cmd"

func main() {
	cmd.Execute()
}
