// Package main is the entry point for the pdfredact CLI.
package main

func main() {
	Execute()
}
