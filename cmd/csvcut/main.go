package main

import "github.com/shapestone/csvstream/cmd/csvcut/cmd"

func main() {
	cmd.Execute()
}
