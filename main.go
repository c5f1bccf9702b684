package main

import "github.com/dailystory/storycheck/cmd"

func main() {
	cmd.Execute()
}
