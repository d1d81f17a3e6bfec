/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tasksheet/tasksheet-cli/cmd"

func main() {
	cmd.Execute()
}
