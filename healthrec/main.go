package main

import (
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/cmd"
)

func main() {
	cmd.Execute()
}
