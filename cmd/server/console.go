package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/folio-space/core/internal/client"
	"github.com/folio-space/core/internal/console"
	"github.com/spf13/cobra"
)

var consoleAPI string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive admin console",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		api := client.New(consoleAPI, session)
		r := &repl{
			ctx:     cmd.Context(),
			api:     api,
			console: console.New(api, session),
			out:     cmd.OutOrStdout(),
		}
		return r.run(cmd.InOrStdin())
	},
}

func init() {
	consoleCmd.Flags().StringVar(&consoleAPI, "api", "http://localhost:5000", "API base URL")
	rootCmd.AddCommand(consoleCmd)
}

func openSession() (*client.Session, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return client.NewSession(), nil
	}
	return client.OpenSession(filepath.Join(dir, "portfolio", "session"))
}

const consoleHelp = `commands:
  login <email> <password>        start a session
  home                            leave the dashboard (ends the session)
  ls <collection>                 load and list records
  show <collection> <id>
  new <collection>                start a new record (id "-")
  edit <collection> <id>
  set <collection> <id> <field> <value...>
  file <collection> <id> <field> <path>
  submit <collection> <id>
  cancel <collection> <id>
  rm <collection> <id>
  resume | resume history | resume upload <path> | resume rm <id>
  messages                        contact messages
  password <current> <new>
  quit
collections: profile skills projects certifications education interests`

type repl struct {
	ctx     context.Context
	api     *client.Client
	console *console.Console
	out     io.Writer
}

func (r *repl) run(in io.Reader) error {
	fmt.Fprintln(r.out, consoleHelp)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := r.exec(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
		for _, n := range r.console.Notices() {
			fmt.Fprintf(r.out, "[%s] %s\n", n.Kind, n.Message)
		}
	}
}

func id(arg string) string {
	if arg == "-" {
		return ""
	}
	return arg
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (r *repl) exec(name string, args []string) error {
	switch name {
	case "help":
		fmt.Fprintln(r.out, consoleHelp)
	case "login":
		if err := need(args, 2, "login <email> <password>"); err != nil {
			return err
		}
		admin, err := r.api.Login(r.ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "logged in as %s <%s>\n", admin.Username, admin.Email)
	case "home":
		return r.console.GoHome()
	case "ls":
		if err := need(args, 1, "ls <collection>"); err != nil {
			return err
		}
		if err := r.console.Load(r.ctx, args[0]); err != nil {
			return err
		}
		return r.list(args[0])
	case "show":
		if err := need(args, 2, "show <collection> <id>"); err != nil {
			return err
		}
		it, err := r.console.Get(args[0], id(args[1]))
		if err != nil {
			return err
		}
		r.show(it)
	case "new":
		if err := need(args, 1, "new <collection>"); err != nil {
			return err
		}
		return r.console.BeginNew(args[0])
	case "edit":
		if err := need(args, 2, "edit <collection> <id>"); err != nil {
			return err
		}
		return r.console.BeginEdit(args[0], id(args[1]))
	case "set":
		if err := need(args, 3, "set <collection> <id> <field> <value...>"); err != nil {
			return err
		}
		return r.console.SetField(args[0], id(args[1]), args[2], strings.Join(args[3:], " "))
	case "file":
		if err := need(args, 4, "file <collection> <id> <field> <path>"); err != nil {
			return err
		}
		s, err := r.console.StageFile(args[0], id(args[1]), args[2], args[3])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "staged %s (%s, %d bytes)\n", s.Name, s.ContentType, s.Size)
	case "submit":
		if err := need(args, 2, "submit <collection> <id>"); err != nil {
			return err
		}
		return r.console.Submit(r.ctx, args[0], id(args[1]))
	case "cancel":
		if err := need(args, 2, "cancel <collection> <id>"); err != nil {
			return err
		}
		return r.console.Cancel(args[0], id(args[1]))
	case "rm":
		if err := need(args, 2, "rm <collection> <id>"); err != nil {
			return err
		}
		return r.console.Delete(r.ctx, args[0], args[1])
	case "resume":
		return r.resume(args)
	case "messages":
		msgs, err := r.api.Messages(r.ctx)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Fprintf(r.out, "%s  %s <%s>  %s (%d attachments)\n",
				m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, m.Subject, len(m.Attachments))
		}
	case "password":
		if err := need(args, 2, "password <current> <new>"); err != nil {
			return err
		}
		msg, err := r.api.ChangePassword(r.ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, msg)
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}

func (r *repl) list(collection string) error {
	items, err := r.console.Items(collection)
	if err != nil {
		return err
	}
	for _, it := range items {
		label := it.Value("name")
		if label == "" {
			label = it.Value("title")
		}
		if label == "" {
			label = it.Value("degree")
		}
		line := fmt.Sprintf("%-36s  %-10s  %s", it.ID, it.State, label)
		if tags, ok := it.Record["tags"].([]any); ok && len(tags) > 0 {
			parts := make([]string, 0, len(tags))
			for _, t := range tags {
				tag := fmt.Sprint(t)
				parts = append(parts, tag+"("+r.console.TagColor(tag)+")")
			}
			line += "  " + strings.Join(parts, " ")
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func (r *repl) show(it console.Item) {
	keys := make([]string, 0, len(it.Record)+len(it.Draft))
	seen := map[string]bool{}
	for k := range it.Record {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range it.Draft {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(r.out, "state: %s\n", it.State)
	for _, k := range keys {
		mark := " "
		if _, ok := it.Draft[k]; ok {
			mark = "*"
		}
		fmt.Fprintf(r.out, "%s %-14s %s\n", mark, k, it.Value(k))
	}
	for _, f := range it.Files {
		fmt.Fprintf(r.out, "+ %-14s %s (%s, %d bytes)\n", f.Field, f.Name, f.ContentType, f.Size)
	}
	if it.Err != "" {
		fmt.Fprintf(r.out, "last error: %s\n", it.Err)
	}
}

func (r *repl) resume(args []string) error {
	if len(args) == 0 {
		cur, err := r.api.CurrentResume(r.ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s  %s  %d bytes\n", cur.ID, cur.OriginalName, cur.Size)
		return nil
	}
	switch args[0] {
	case "history":
		list, err := r.api.ResumeHistory(r.ctx)
		if err != nil {
			return err
		}
		for _, res := range list {
			fmt.Fprintf(r.out, "%s  %s  %s\n", res.ID, res.UploadDate.Format("2006-01-02"), res.OriginalName)
		}
	case "upload":
		if err := need(args, 2, "resume upload <path>"); err != nil {
			return err
		}
		res, err := r.api.UploadResume(r.ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "uploaded %s as %s\n", res.OriginalName, res.ID)
	case "rm":
		if err := need(args, 2, "resume rm <id>"); err != nil {
			return err
		}
		msg, err := r.api.DeleteResume(r.ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, msg)
	default:
		return fmt.Errorf("unknown resume command %q", args[0])
	}
	return nil
}
