package main

import "github.com/reidsolon/tracker/cmd/tracker"

func main() {
	tracker.Execute()
}
