// Package main provides the entry point for the mobilecheck CLI.
package main

func main() {
	Execute()
}
