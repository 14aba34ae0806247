package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"golang.org/x/term"

	echoapi "github.com/springreviewer/admin/apps/api/echo"
	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp         = errors.New("help provided")
	errNotConfirmed = errors.New("deletion needs a confirmation; pass -yes when stdin is not a terminal")
)

type commandLine struct {
	conf     *core.Config
	deps     core.Deps
	in       *bufio.Reader
	out      io.Writer
	users    user.Repository
	subjects subject.Repository
	teachers teacher.Repository
	linker   teacher.Linker
	reviews  review.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  users    list|add|edit|delete    - manage users")
	fmt.Fprintln(cli.out, "  subjects list|add|edit|delete    - manage subjects")
	fmt.Fprintln(cli.out, "  teachers list|add|edit|delete    - manage teachers and the subjects they teach")
	fmt.Fprintln(cli.out, "  reviews  list|search|add|edit|delete - manage reviews")
	fmt.Fprintln(cli.out, "  token -username USERNAME         - issue an admin token for the web API")
	fmt.Fprintln(cli.out, "Run '<command> <action> -h' for the flags of an action.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	if args[1] == "token" {
		return cli.token(args[2:])
	}
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	action, rest := args[2], args[3:]
	switch args[1] {
	case "users":
		return cli.runUsers(ctx, action, rest)
	case "subjects":
		return cli.runSubjects(ctx, action, rest)
	case "teachers":
		return cli.runTeachers(ctx, action, rest)
	case "reviews":
		return cli.runReviews(ctx, action, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) token(args []string) error {
	cmd := cli.flagSet("token")
	uname := cmd.String("username", "", "The username carried by the token.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	if core.CleanString(*uname) == "" {
		cmd.Usage()
		return errHelp
	}
	token, err := echoapi.GenerateToken(cli.conf, echoapi.NewClaims(cli.conf, core.CleanString(*uname)))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}

// Helpers

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// requireID returns the value of the -id flag, printing the usage when it is missing.
func requireID(fs *flag.FlagSet, id int) (int, error) {
	if id <= 0 {
		fs.Usage()
		return 0, errHelp
	}
	return id, nil
}

// visited reports the flags explicitly set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (cli *commandLine) unknownAction(entity, action string) error {
	fmt.Fprintf(cli.out, "unknown %s action %q\n", entity, action)
	cli.printUsage()
	return errHelp
}

// confirmer asks on the terminal unless yes is set.
func (cli *commandLine) confirmer(yes bool) core.Confirmer {
	if yes {
		return core.AlwaysConfirm
	}
	return core.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		if !isTerminalFunc(int(os.Stdin.Fd())) {
			return false, errNotConfirmed
		}
		fmt.Fprintf(cli.out, "%s [y/N]: ", prompt)
		line, err := cli.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, errors.Wrap(err, "reading confirmation")
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

func (cli *commandLine) deleted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cli.out, "Cancelled.")
	}
	return nil
}

// formErrors prints the field errors of a rejected form.
func (cli *commandLine) formErrors(err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for _, fe := range vErr.Fields {
			fmt.Fprintf(cli.out, "  %s: %s\n", fe.Field, fe.Error)
		}
	}
	return err
}

// table prints rows under header, or empty when there are no rows.
func (cli *commandLine) table(empty string, header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, empty)
		return
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
