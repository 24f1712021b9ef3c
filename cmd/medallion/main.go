package main

import "github.com/orchid-commerce/medallion/internal/cmd"

func main() {
	cmd.Execute()
}
