package main

import "github.com/klytics/numsay/cmd"

func main() {
	cmd.Execute()
}
