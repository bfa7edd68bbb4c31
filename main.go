package main

import "stegochat-backend/cmd"

func main() {
	cmd.Execute()
}
