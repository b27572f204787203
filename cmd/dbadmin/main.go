// Command dbadmin inspects and manages the service's SQLite database file.
//
// Usage:
//
//	dbadmin [-db path] [-yes] <command>
//
// Commands:
//
//	info    show database file information
//	users   list all users in the database
//	schema  print the table DDL
//	reset   delete the database and recreate it with default data (-yes required)
//	backup  copy the database to a timestamped backup file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mjiang93/user-service/internal/repository/sqlite"
	"github.com/mjiang93/user-service/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dbadmin", flag.ContinueOnError)
	dbPath := fs.String("db", "app.db", "path to the SQLite database file")
	yes := fs.Bool("yes", false, "skip confirmation for destructive commands")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd := fs.Arg(0); cmd {
	case "info":
		return showInfo(*dbPath)
	case "users":
		return showUsers(*dbPath)
	case "schema":
		return showSchema(*dbPath)
	case "reset":
		if !*yes {
			return errors.New("reset deletes all data; re-run with -yes to confirm")
		}
		return resetDatabase(*dbPath)
	case "backup":
		return backupDatabase(*dbPath)
	case "":
		fs.Usage()
		return errors.New("missing command (info|users|schema|reset|backup)")
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func showInfo(dbPath string) error {
	fmt.Printf("Database file: %s\n", dbPath)

	fi, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		fmt.Println("Database exists: false")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println("Database exists: true")
	fmt.Printf("Database size: %d bytes\n", fi.Size())

	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.Users().Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Users: %d\n", count)
	return nil
}

func showUsers(dbPath string) error {
	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := db.Users().List(context.Background())
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found in database")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func showSchema(dbPath string) error {
	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.SqlDB.QueryContext(context.Background(),
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND sql IS NOT NULL")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ddl string
		if err := rows.Scan(&ddl); err != nil {
			return err
		}
		fmt.Println(ddl)
		fmt.Println()
	}
	return rows.Err()
}

func resetDatabase(dbPath string) error {
	// WAL mode leaves sidecar files next to the database.
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := service.NewUserService(db.Users()).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	fmt.Println("Database recreated with default data")
	return nil
}

func backupDatabase(dbPath string) error {
	src, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("app_backup_%s.db", time.Now().Format("20060102_150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy database: %w", err)
	}

	fmt.Printf("Database backed up to: %s\n", backupPath)
	return nil
}
