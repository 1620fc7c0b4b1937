package main

import (
	"github.com/pharmakit/storefront/cmd"
)

func main() {
	cmd.Execute()
}
