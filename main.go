package main

import (
	"github.com/moratsam/ltfountain/cmd"
)

func main() {
	check(cmd.Execute())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
