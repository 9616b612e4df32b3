package main

import "github.com/theirongolddev/smokesense/cmd"

func main() {
	cmd.Execute()
}
