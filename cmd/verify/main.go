package main

import (
	"os"

	"github.com/itemlab/itemlab/internal/verify"
)

// The verifier targets a locally running API service on its default port.
const baseURL = "http://127.0.0.1:8001"

func main() {
	client := verify.NewClient(baseURL, os.Stdout)
	client.Run()
}
