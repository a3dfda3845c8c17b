package main

import "github.com/basecamp/visit-recorder/internal/cmd"

func main() {
	cmd.Execute()
}
