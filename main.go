package main

import "github.com/ValentinKolb/rubin/cmd"

func main() {
	cmd.Execute()
}
