package main

import (
	cmd "github.com/genielabs/genie-admin/cmd/genie"
)

func main() {
	cmd.Execute()
}
