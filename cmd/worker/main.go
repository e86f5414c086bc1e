package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker notify | remind | provision <firebase-uid> <email> <role> [full name]")
	}

	switch os.Args[1] {
	case "notify":
		RunNotify()
	case "remind":
		RunRemind()
	case "provision":
		RunProvision(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
