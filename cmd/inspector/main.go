// Command inspector dumps message and room records from a Badger store in a
// readable table. It opens the store read-only, so it is safe to point at a
// live instance's data directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"studio-chat/domain"
)

type config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"/tmp/studio-chat"`
}

func main() {
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("Error reading config: ", err)
	}

	dbPath := flag.String("db", cfg.BadgerFilepath, "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg: or room:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	switch *prefix {
	case "msg:":
		err = dumpMessages(db)
	case "room:":
		err = dumpRooms(db)
	default:
		err = dumpRaw(db, *prefix)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func dumpMessages(db *badger.DB) error {
	color.Cyan.Println("Messages")

	table := newTable([]string{"ID", "Sender", "Target", "Type", "Read", "Created", "Content"})
	err := scan(db, "msg:", func(key string, value []byte) error {
		var msg domain.Message
		if err := json.Unmarshal(value, &msg); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}

		target := ""
		if msg.ReceiverID != nil {
			target = fmt.Sprintf("user:%d", *msg.ReceiverID)
		} else if msg.RoomID != nil {
			target = fmt.Sprintf("room:%d", *msg.RoomID)
		}

		content := msg.Content
		if len(content) > 40 {
			content = content[:40] + "…"
		}

		table.Append([]string{
			fmt.Sprintf("%d", msg.ID),
			fmt.Sprintf("%d", msg.SenderID),
			target,
			string(msg.Type),
			fmt.Sprintf("%t", msg.IsRead),
			msg.CreatedAt.Format("2006-01-02 15:04:05"),
			content,
		})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func dumpRooms(db *badger.DB) error {
	color.Cyan.Println("Rooms")

	table := newTable([]string{"ID", "Name", "Group", "Creator", "Created"})
	err := scan(db, "room:", func(key string, value []byte) error {
		var room domain.Room
		if err := json.Unmarshal(value, &room); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}

		table.Append([]string{
			fmt.Sprintf("%d", room.ID),
			room.Name,
			fmt.Sprintf("%t", room.IsGroup),
			fmt.Sprintf("%d", room.CreatorID),
			room.CreatedAt.Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func dumpRaw(db *badger.DB, prefix string) error {
	color.Cyan.Printf("Raw keys under %q\n", prefix)

	table := newTable([]string{"Key", "Value"})
	err := scan(db, prefix, func(key string, value []byte) error {
		display := string(value)
		if len(display) > 60 {
			display = display[:60] + "…"
		}
		table.Append([]string{key, display})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func scan(db *badger.DB, prefix string, fn func(key string, value []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				return fn(string(item.Key()), v)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
