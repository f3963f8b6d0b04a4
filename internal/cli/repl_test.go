package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// execStub records which commands the REPL dispatched.
type execStub struct {
	calls []string
}

func (s *execStub) record(name string)                 { s.calls = append(s.calls, name) }
func (s *execStub) Settings(ctx context.Context)       { s.record("settings") }
func (s *execStub) TestConnection(ctx context.Context) { s.record("test") }
func (s *execStub) Entities(ctx context.Context)       { s.record("entities") }
func (s *execStub) AddEntity(ctx context.Context)      { s.record("addentity") }
func (s *execStub) DeleteEntity(ctx context.Context)   { s.record("delentity") }
func (s *execStub) Collections(ctx context.Context)    { s.record("collections") }
func (s *execStub) AddCollection(ctx context.Context)  { s.record("addcollection") }
func (s *execStub) DeleteCollection(ctx context.Context) {
	s.record("delcollection")
}
func (s *execStub) Details(ctx context.Context)      { s.record("details") }
func (s *execStub) AddDetail(ctx context.Context)    { s.record("adddetail") }
func (s *execStub) DeleteDetail(ctx context.Context) { s.record("deldetail") }
func (s *execStub) Sync(ctx context.Context)         { s.record("sync") }
func (s *execStub) Push(ctx context.Context)         { s.record("push") }
func (s *execStub) Pull(ctx context.Context)         { s.record("pull") }
func (s *execStub) ResetSync(ctx context.Context)    { s.record("resetsync") }
func (s *execStub) Dashboard(ctx context.Context)    { s.record("dashboard") }

func runWithInput(t *testing.T, input string) (*execStub, []string) {
	t.Helper()

	var printed []string
	saved := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, x := range a {
			if s, ok := x.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = saved })

	stub := &execStub{}
	runREPL(context.Background(), stub, bufio.NewReader(strings.NewReader(input)))
	return stub, printed
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub, _ := runWithInput(t, "entities\naddcollection\npush\npull\ndashboard\nexit\n")
	assert.Equal(t, []string{"entities", "addcollection", "push", "pull", "dashboard"}, stub.calls)
}

func TestREPL_ExitAndQuit(t *testing.T) {
	stub, _ := runWithInput(t, "quit\nsync\n")
	assert.Empty(t, stub.calls, "nothing dispatched after quit")
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub, printed := runWithInput(t, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)

	found := false
	for _, p := range printed {
		if strings.Contains(p, "unknown command: frobnicate") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestREPL_HelpAndBlankLines(t *testing.T) {
	stub, printed := runWithInput(t, "\n   \nhelp\nexit\n")
	assert.Empty(t, stub.calls)

	found := false
	for _, p := range printed {
		if strings.Contains(p, "resetsync") {
			found = true
		}
	}
	assert.True(t, found, "help text printed")
}

func TestREPL_StopsOnEOF(t *testing.T) {
	stub, _ := runWithInput(t, "entities")
	assert.Equal(t, []string{"entities"}, stub.calls)
}

// promptStub reads a prompt line through the same reader the REPL uses,
// the way App command handlers do.
type promptStub struct {
	execStub
	reader *bufio.Reader
	got    string
}

func (s *promptStub) AddEntity(ctx context.Context) {
	s.got, _ = GetSimpleText(s.reader, "Entity name")
	s.record("addentity")
}

func TestREPL_PromptInputSharesCommandBuffer(t *testing.T) {
	saved := printlnFn
	printlnFn = func(a ...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = saved })

	reader := bufio.NewReader(strings.NewReader("addentity\nSchool A\nentities\nexit\n"))
	stub := &promptStub{reader: reader}
	runREPL(context.Background(), stub, reader)

	// The prompt consumed exactly its own line; the next command line was
	// not swallowed by read-ahead.
	assert.Equal(t, "School A", stub.got)
	assert.Equal(t, []string{"addentity", "entities"}, stub.calls)
}
