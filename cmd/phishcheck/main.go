// Package main - точка входа phishcheck.
//
// Использование:
//
//	phishcheck serve
//	phishcheck check http://example.com
//	phishcheck history --limit 10
package main

func main() {
	Execute()
}
