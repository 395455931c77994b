package main

import "github.com/hirotalab/cms-server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
