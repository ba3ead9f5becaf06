package main

import (
	"catalogwatch/cmd/catalogwatch/commands"
	"catalogwatch/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
