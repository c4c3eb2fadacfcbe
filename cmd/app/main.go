package main

import "github.com/BuzzLyutic/tarefas-api/internal/cli"

// version подставляется при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.Execute(version)
}
