package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/linkmark/linkmark-api/pkg/client"
)

const usage = `usage: linkmarkctl <command> [args]

commands:
  list                 print the caller's bookmarks, newest first
  add <url> <title>    create a bookmark
  delete <id>          delete an owned bookmark
  watch                poll the list and print every cache transition

environment:
  LINKMARK_SERVER   base URL of the bookmark service (default http://localhost:5002)
  LINKMARK_TOKEN    bearer token (required)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	server := os.Getenv("LINKMARK_SERVER")
	if server == "" {
		server = "http://localhost:5002"
	}
	token := os.Getenv("LINKMARK_TOKEN")
	if token == "" {
		log.Fatal("LINKMARK_TOKEN is required")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		runList(ctx, server, token)
	case "add":
		if len(os.Args) != 4 {
			log.Fatal("usage: linkmarkctl add <url> <title>")
		}
		c := client.New(client.Config{BaseURL: server, Token: token})
		if err := c.Add(ctx, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		fmt.Println("added")
	case "delete":
		if len(os.Args) != 3 {
			log.Fatal("usage: linkmarkctl delete <id>")
		}
		c := client.New(client.Config{BaseURL: server, Token: token})
		if err := c.Delete(ctx, os.Args[2]); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("deleted")
	case "watch":
		runWatch(ctx, server, token)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runList(ctx context.Context, server, token string) {
	c := client.New(client.Config{BaseURL: server, Token: token, Interval: time.Hour})
	c.Start(ctx)
	defer c.Close()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		state, list, err := c.Snapshot()
		switch state {
		case client.StateReady:
			printList(list)
			return
		case client.StateError:
			log.Fatalf("list failed: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	log.Fatal("timed out waiting for the server")
}

func runWatch(ctx context.Context, server, token string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	c := client.New(client.Config{
		BaseURL:  server,
		Token:    token,
		Interval: 2 * time.Second,
		OnChange: func(state client.State, list []client.Bookmark) {
			fmt.Printf("--- %s (%d items)\n", state, len(list))
			printList(list)
		},
	})
	c.Start(ctx)
	defer c.Close()
	<-ctx.Done()
}

func printList(list []client.Bookmark) {
	if len(list) == 0 {
		fmt.Println("(no bookmarks)")
		return
	}
	for _, b := range list {
		fmt.Printf("%s  %s  %s  (%s)\n", b.ID, b.Title, b.URL, b.CreatedAt.Format(time.RFC3339))
	}
}
