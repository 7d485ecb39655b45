package main

import "warehouse-manager/cmd"

func main() {
	cmd.Execute()
}
