package main

import "github.com/thai-lint/thailint-go/cmd"

func main() {
	cmd.Execute()
}
