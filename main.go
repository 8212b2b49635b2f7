package main

import "leasedesk/commands"

func main() {
	commands.Execute()
}
