package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}

func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	f.admin = false
	return nil
}

func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}

func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}

func (f *fakeExec) ListUsers(ctx context.Context) error {
	f.calls = append(f.calls, "users")
	return nil
}

func (f *fakeExec) AddUser(ctx context.Context) error {
	f.calls = append(f.calls, "useradd")
	return nil
}

func (f *fakeExec) EditUser(ctx context.Context) error {
	f.calls = append(f.calls, "useredit")
	return nil
}

func (f *fakeExec) DeleteUser(ctx context.Context) error {
	f.calls = append(f.calls, "userdel")
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"whoami",
		"",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	require.Equal(t, []string{"login", "whoami", "logout"}, exec.calls)
}

func TestRunREPL_AdminCommandsHiddenFromRegularUser(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"users",
		"useradd",
		"useredit",
		"userdel",
		"quit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true, admin: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	require.Empty(t, exec.calls)
}

func TestRunREPL_AdminCommandsDispatchForAdmin(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"users",
		"useradd",
		"useredit",
		"userdel",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	require.Equal(t, []string{"users", "useradd", "useredit", "userdel"}, exec.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("help\n"))

	runREPL(context.Background(), exec, func() string { return "" }, sc)
	require.Empty(t, exec.calls)
}
