package main

import "bare/cmd/bq/cmd"

func main() {
	cmd.Execute()
}
