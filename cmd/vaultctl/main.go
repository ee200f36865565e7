package main

import "supervault_dashboard/internal/cli"

func main() {
	cli.Execute()
}
