package main

import "github.com/shenwei356/nebula/cmd/nebula/cmd"

func main() {
	cmd.Execute()
}
