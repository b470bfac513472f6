package main

import "github.com/frahmantamala/camp-management/cmd"

func main() {
	cmd.Execute()
}
