package main

import (
	"os"

	app "github.com/ak7sky/cidrsum/internal"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
