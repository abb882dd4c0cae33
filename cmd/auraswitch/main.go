// Command auraswitch switches the ASUS keyboard lighting mode in G-Helper
// according to what the user is doing.
package main

func main() {
	Execute()
}
