package main

import "TripPlanner/cmd/tripctl/cmd"

func main() {
	cmd.Execute()
}
