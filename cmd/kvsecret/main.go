package main

import (
	"os"

	"github.com/reddit/automate.go/cmd/lib/kvsecret"
)

func main() {
	os.Exit(kvsecret.Run())
}
