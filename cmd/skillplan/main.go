package main

import "skillplan/cmd/skillplan/root"

func main() {
	root.Execute()
}
