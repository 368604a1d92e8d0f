// Command casky-cli is an interactive REPL client for caskyd, built on
// top of the client package.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/casky-db/casky/client"
	"github.com/casky-db/casky/internal/utils"
)

func main() {
	flags := utils.HandleClientFlags()

	c, err := client.Connect(client.WithHost(flags.Host), client.WithPort(flags.Port))
	if err != nil {
		fmt.Println("connect error:", err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Println(c.Banner)
	fmt.Printf("Connected to %s:%d\n", flags.Host, flags.Port)
	fmt.Println("Type PUT/GET/DEL/COMPACT/STATS/VER, or 'exit' to disconnect.")

	stdin := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Println("input error:", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return
		}

		if err := runCommand(c, line); err != nil {
			fmt.Println(err)
		}
	}
}

func runCommand(c *client.Client, line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}

	verb := strings.ToUpper(fields[0])
	args := fields[1:]

	switch verb {
	case "PUT":
		if len(args) < 2 {
			return errors.New("usage: PUT <key> <value>")
		}
		if err := c.Put(args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Println("OK")

	case "GET":
		if len(args) != 1 {
			return errors.New("usage: GET <key>")
		}
		value, err := c.Get(args[0])
		if errors.Is(err, client.ErrNotFound) {
			fmt.Println("NOT_FOUND")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(value)

	case "DEL":
		if len(args) != 1 {
			return errors.New("usage: DEL <key>")
		}
		err := c.Delete(args[0])
		if errors.Is(err, client.ErrNotFound) {
			fmt.Println("NOT_FOUND")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("OK")

	case "COMPACT":
		if err := c.Compact(); err != nil {
			return err
		}
		fmt.Println("OK")

	case "STATS":
		stats, err := c.Stats()
		if err != nil {
			return err
		}
		fmt.Println(stats)

	case "VER":
		version, err := c.Version()
		if err != nil {
			return err
		}
		fmt.Println(version)

	default:
		return fmt.Errorf("unknown command: %s", verb)
	}

	return nil
}
