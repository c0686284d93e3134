package main

import (
	"github.com/joetifa2003/pagecraft/cmd/pagecraft/cmd"
)

func main() {
	cmd.Execute()
}
