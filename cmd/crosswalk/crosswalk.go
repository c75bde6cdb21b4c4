// Command crosswalk manages scoped identifier associations in a key-value store.
package main

//spellchecker:words database errors flag http time github crosswalk assoc internal status dustin humanize glebarez sqlite mysql
import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/FAU-CDI/crosswalk"
	"github.com/FAU-CDI/crosswalk/internal/api"
	"github.com/FAU-CDI/crosswalk/internal/status"
	"github.com/FAU-CDI/crosswalk/pkg/assoc"
	"github.com/dustin/go-humanize"
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/profile"
)

var (
	errBothSqliteAndMysql = errors.New("both -sqlite and -mysql were given")
	errWrongArgCount      = errors.New("wrong number of arguments")
	errUnknownCommand     = errors.New("unknown command")
	errNotFound           = errors.New("no association found")
)

func main() {
	st := status.NewStatus(os.Stderr)

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	if len(nArgs) == 0 {
		st.Log("Usage: crosswalk [-help] [...flags] command [args...]")
		st.Log("commands: set, external, primary, delete, purge, count, dump, serve")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if sqlite != "" && mysql != "" {
		st.LogFatal("parse arguments", errBothSqliteAndMysql)
	}

	// open the backend store
	var store *assoc.Store
	err := st.DoStage(status.StageOpen, func() (err error) {
		switch {
		case sqlite != "":
			var db *sql.DB
			db, err = sql.Open("sqlite", sqlite)
			if err != nil {
				return err
			}
			store, err = crosswalk.OpenSQL(db, table)
		case mysql != "":
			var db *sql.DB
			db, err = sql.Open("mysql", mysql)
			if err != nil {
				return err
			}
			store, err = crosswalk.OpenSQL(db, table)
		default:
			store, err = crosswalk.Open(leveldbPath)
		}
		return
	})
	if err != nil {
		st.LogFatal("open store", err)
	}
	defer store.Close()

	if err := run(st, store, nArgs[0], nArgs[1:]); err != nil {
		st.LogFatal(nArgs[0], err)
	}
}

func run(st *status.Status, store *assoc.Store, command string, args []string) error {
	switch command {
	case "set":
		if len(args) != 3 {
			return errWrongArgCount
		}
		return st.DoStage(status.StageSave, func() error {
			return store.Save(args[0], args[1], args[2])
		})

	case "external":
		if len(args) != 2 {
			return errWrongArgCount
		}
		external, ok, err := store.ExternalByPrimary(args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return errNotFound
		}
		fmt.Println(external)
		return nil

	case "primary":
		if len(args) != 2 {
			return errWrongArgCount
		}
		primary, ok, err := store.PrimaryByExternal(args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return errNotFound
		}
		fmt.Println(primary)
		return nil

	case "delete":
		if len(args) != 3 {
			return errWrongArgCount
		}
		return st.DoStage(status.StageDelete, func() error {
			removed, err := store.DeletePair(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if !removed {
				return errNotFound
			}
			return nil
		})

	case "purge":
		if len(args) != 1 {
			return errWrongArgCount
		}
		return st.DoStage(status.StagePurge, func() error {
			removed, err := store.DeleteScope(args[0])
			if err != nil {
				return err
			}
			st.Log("purged scope", "scope", args[0], "keys", humanize.Comma(int64(removed)))
			return nil
		})

	case "count":
		if len(args) != 0 {
			return errWrongArgCount
		}
		count, err := store.Count()
		if err != nil {
			return err
		}
		fmt.Println(humanize.Comma(int64(count)))
		return nil

	case "dump":
		if len(args) != 0 {
			return errWrongArgCount
		}
		return st.DoStage(status.StageDump, func() error {
			return store.Pairs(func(scope, primary, external string) error {
				_, err := fmt.Printf("%s\t%s\t%s\n", scope, primary, external)
				return err
			})
		})

	case "serve":
		if len(args) != 0 {
			return errWrongArgCount
		}

		if debugServer != "" {
			go listenDebug(st)
		}

		handler := &api.API{Store: store, Status: st}

		server := http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		st.Log("listen", "addr", addr)
		return server.ListenAndServe()

	default:
		return errUnknownCommand
	}
}

// ===================

var nArgs []string
var leveldbPath = "crosswalk.leveldb"
var sqlite string
var mysql string
var table string
var addr = "localhost:8080"
var debugServer = ""
var debugProfile = ""

func init() {
	flag.StringVar(&leveldbPath, "leveldb", leveldbPath, "Path to the leveldb database to use")
	flag.StringVar(&sqlite, "sqlite", sqlite, "Use an sqlite database at the given path instead of leveldb")
	flag.StringVar(&mysql, "mysql", mysql, "Use a mysql database. Use a connection string of the form `username:password@host/database`")
	flag.StringVar(&table, "table", table, "Table to store associations in (sql backends only)")

	flag.StringVar(&addr, "addr", addr, "Address to listen on for the serve command")

	flag.StringVar(&debugServer, "debug-listen", debugServer, "start a pprof debug server on the given address")
	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a debugging profile to the given path")

	flag.Parse()
	nArgs = flag.Args()
}
