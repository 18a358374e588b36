package main

import "github.com/jsphweid/midicoach/cmd"

func main() {
	cmd.Execute()
}
