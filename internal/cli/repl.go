package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Settings(ctx context.Context)
	TestConnection(ctx context.Context)
	Entities(ctx context.Context)
	AddEntity(ctx context.Context)
	DeleteEntity(ctx context.Context)
	Collections(ctx context.Context)
	AddCollection(ctx context.Context)
	DeleteCollection(ctx context.Context)
	Details(ctx context.Context)
	AddDetail(ctx context.Context)
	DeleteDetail(ctx context.Context)
	Sync(ctx context.Context)
	Push(ctx context.Context)
	Pull(ctx context.Context)
	ResetSync(ctx context.Context)
	Dashboard(ctx context.Context)
}

const helpText = `Commands:
  settings       configure the remote endpoint and token
  test           check connectivity to the remote
  entities       list entities
  addentity      register a new entity
  delentity      delete an entity (cascades to its collections and details)
  collections    list collection events
  addcollection  record a collection event
  delcollection  delete a collection event (cascades to its details)
  details        list material line items of a collection
  adddetail      add a material line item
  deldetail      delete a material line item
  sync           push pending changes, then pull remote data
  push           upload pending changes only
  pull           download remote data only
  resetsync      re-mark every local record for upload
  dashboard      show collection metrics
  exit | quit    leave the program`

// runREPL starts a simple read–eval–print loop for the fieldtrack CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Command input and prompt input (GetSimpleText) must share this one
// buffered reader: a second buffer on the same fd can read ahead and swallow
// lines meant for the other.
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("ft> ")
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText)
		case "settings":
			a.Settings(ctx)
		case "test":
			a.TestConnection(ctx)
		case "entities":
			a.Entities(ctx)
		case "addentity":
			a.AddEntity(ctx)
		case "delentity":
			a.DeleteEntity(ctx)
		case "collections":
			a.Collections(ctx)
		case "addcollection":
			a.AddCollection(ctx)
		case "delcollection":
			a.DeleteCollection(ctx)
		case "details":
			a.Details(ctx)
		case "adddetail":
			a.AddDetail(ctx)
		case "deldetail":
			a.DeleteDetail(ctx)
		case "sync":
			a.Sync(ctx)
		case "push":
			a.Push(ctx)
		case "pull":
			a.Pull(ctx)
		case "resetsync":
			a.ResetSync(ctx)
		case "dashboard":
			a.Dashboard(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn(fmt.Sprintf("unknown command: %s (type 'help')", parts[0]))
		}

		// A final line without a trailing newline is dispatched above and
		// the loop ends here.
		if err != nil {
			return
		}
	}
}
