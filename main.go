package main

import (
	"github.com/quartermaster-app/linkgraph/cmd"
)

func main() {
	cmd.Execute()
}
