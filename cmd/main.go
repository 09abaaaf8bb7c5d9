package main

import (
	cmd "github.com/tenrai/leitor/cmd/leitor"
)

func main() {
	cmd.Execute()
}
