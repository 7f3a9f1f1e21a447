package main

import (
	_ "time/tzdata"

	"worktime/cmd"
)

func main() {
	cmd.Execute()
}
