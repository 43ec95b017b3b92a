// Command equipd serves the equipment tracking API and manages its schema.
package main

func main() {
	Execute()
}
