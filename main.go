package main

import "orgsync/cmd"

func main() {
	cmd.Execute()
}
