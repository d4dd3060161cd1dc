package main

import (
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/server"
)

func main() {
	os.Exit(server.Main())
}
