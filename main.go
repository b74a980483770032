/*
	Copyright 2025 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/f1telemetry-replay-go/cmd"

func main() {
	cmd.Execute()
}
