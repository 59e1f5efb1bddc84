/*
Copyright © 2026 JACOB ARTHURS
*/
package main

import "github.com/jacobarthurs/sqladvisor/cmd"

func main() {
	cmd.Execute()
}
