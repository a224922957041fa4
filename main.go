// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"limn/internal/langs"
	"limn/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the limn REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a line to tokenize it, :langs to list languages, :quit to leave.")
	repl.Start(os.Stdin, os.Stdout, langs.Builtin(), "css")
}
