package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"threadline/internal/cmd/flags"
	"threadline/internal/config"
	"threadline/internal/core"
	"threadline/internal/thread"

	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

const (
	prefetchComments    = 5
	prefetchConcurrency = 3
)

var ErrBadThreadArgs = errors.New("usage: thread <post|blog> <entityID>")

var threadCmd = &cli.Command{
	Name:      "thread",
	Usage:     "Browse a comment thread interactively",
	ArgsUsage: "<post|blog> <entityID>",
	Flags: []cli.Flag{
		flags.Dump,
		flags.Yes,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		kind := core.EntityKind(c.Args().Get(0))
		entityID := c.Args().Get(1)
		if (kind != core.EntityPost && kind != core.EntityBlog) || entityID == "" {
			return ErrBadThreadArgs
		}
		return run(ctx, c, pal.Provide(&threadScreen{kind: kind, entityID: entityID}))
	},
}

type threadScreen struct {
	Logger  *slog.Logger
	Threads *thread.Service
	Config  *config.Config

	kind     core.EntityKind
	entityID string

	in   *bufio.Scanner
	snap thread.Snapshot
}

func (s *threadScreen) Run(ctx context.Context) error {
	th := s.Threads.Open(ctx, s.kind, s.entityID)
	defer th.Close()

	if err := th.Load(ctx); err != nil {
		notify(err)
		return nil
	}
	s.Logger.Debug("thread loaded", "entity", s.entityID, "comments", th.Total())

	// Warm the reply cache for the comments at the top of the screen.
	prefetch := th.PrefetchReplies(prefetchComments, prefetchConcurrency)
	defer prefetch.Stop()

	if s.Config.Dump {
		if _, err := prefetch.Wait(); err != nil {
			notify(err)
		}
		pp.Println(th.Snapshot())
		return nil
	}

	s.render(th)

	s.in = bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for s.in.Scan() {
		if quit := s.handle(ctx, th, strings.TrimSpace(s.in.Text())); quit {
			return nil
		}
		fmt.Print("> ")
	}
	return s.in.Err()
}

func (s *threadScreen) render(th *thread.Thread) {
	s.snap = th.Snapshot()

	fmt.Printf("\ncomments for %s %s (%d total)\n", s.snap.Kind, s.snap.EntityID, s.snap.Total)
	for i, view := range s.snap.Comments {
		fmt.Printf("%3d. %s (%s): %s\n", i+1, view.Author.Name, view.CreatedAt.Format("2006-01-02 15:04"), view.Content)

		switch {
		case view.Expanded:
			for j, reply := range view.Replies {
				mention := ""
				if reply.ReplyToUser != nil {
					mention = "@" + reply.ReplyToUser.Name + " "
				}
				fmt.Printf("     %d.%d %s: %s%s\n", i+1, j+1, reply.Author.Name, mention, reply.Content)
			}
		case view.Count() > 0:
			fmt.Printf("     [%d replies, `open %d` to show]\n", view.Count(), i+1)
		}
	}
	if s.snap.HasMore {
		fmt.Println("(`more` loads the next page)")
	}
}

// handle runs one command of the interactive loop. Failures are shown as
// transient messages and never end the session.
func (s *threadScreen) handle(ctx context.Context, th *thread.Thread, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
	case "help":
		printHelp()
	case "ls":
		s.render(th)
	case "refresh":
		if err := th.Load(ctx); err != nil {
			notify(err)
			break
		}
		s.render(th)
	case "more":
		if err := th.LoadMore(ctx); err != nil {
			notify(err)
			break
		}
		s.render(th)
	case "open", "close":
		s.toggle(ctx, th, rest, cmd == "open")
	case "comment":
		if _, err := th.AddComment(ctx, rest); err != nil {
			notify(err)
			break
		}
		s.render(th)
	case "reply":
		s.reply(ctx, th, rest)
	case "edit":
		s.edit(ctx, th, rest)
	case "rm":
		s.remove(ctx, th, rest)
	case "report":
		s.report(ctx, th, rest)
	case "q", "quit", "exit":
		return true
	default:
		fmt.Printf("unknown command %q, try `help`\n", cmd)
	}
	return false
}

func printHelp() {
	fmt.Print(`commands:
  ls                      redraw the thread
  more                    load the next page of comments
  refresh                 reload the thread from the server
  open N / close N        show or hide the replies of comment N
  comment <text>          add a top-level comment
  reply N <text>          reply to comment N
  edit N[.M] <text>       edit your comment N or reply N.M
  rm N[.M]                delete your comment or reply (asks for confirmation)
  report N[.M] <reason>   report a comment or reply
  quit
`)
}

func (s *threadScreen) toggle(ctx context.Context, th *thread.Thread, ref string, open bool) {
	view, _, err := s.resolveComment(ref)
	if err != nil {
		notify(err)
		return
	}
	if view.Expanded == open {
		s.render(th)
		return
	}

	if _, err := th.Toggle(ctx, view.ID); err != nil {
		notify(err)
		return
	}
	s.render(th)
}

func (s *threadScreen) reply(ctx context.Context, th *thread.Thread, rest string) {
	ref, text, _ := strings.Cut(rest, " ")
	view, _, err := s.resolveComment(ref)
	if err != nil {
		notify(err)
		return
	}

	replyTo := view.Author
	if _, err := th.AddReply(ctx, view.ID, text, &replyTo); err != nil {
		notify(err)
		return
	}
	s.render(th)
}

func (s *threadScreen) edit(ctx context.Context, th *thread.Thread, rest string) {
	ref, text, _ := strings.Cut(rest, " ")
	id, _, err := s.resolve(ref)
	if err != nil {
		notify(err)
		return
	}

	if !th.CanModify(id) {
		fmt.Println("! you can only edit your own comments")
		return
	}

	if err := th.EditComment(ctx, id, text); err != nil {
		notify(err)
		return
	}
	s.render(th)
}

func (s *threadScreen) remove(ctx context.Context, th *thread.Thread, ref string) {
	id, isReply, err := s.resolve(ref)
	if err != nil {
		notify(err)
		return
	}

	if !th.CanModify(id) {
		fmt.Println("! you can only delete your own comments")
		return
	}
	if !s.confirm(fmt.Sprintf("delete %s? [y/N] ", ref)) {
		fmt.Println("kept")
		return
	}

	if isReply {
		err = th.DeleteReply(ctx, id)
	} else {
		err = th.DeleteComment(ctx, id)
	}
	if err != nil {
		notify(err)
		return
	}
	s.render(th)
}

func (s *threadScreen) report(ctx context.Context, th *thread.Thread, rest string) {
	ref, reason, _ := strings.Cut(rest, " ")
	id, _, err := s.resolve(ref)
	if err != nil {
		notify(err)
		return
	}

	author, ok := s.authorOf(id)
	if !ok {
		notify(core.ErrNotFound)
		return
	}

	if err := th.Report(ctx, author.ID, core.TargetComment, id, reason); err != nil {
		notify(err)
		return
	}
	fmt.Println("report submitted")
}

// confirm blocks on a yes/no prompt; --yes answers it upfront.
func (s *threadScreen) confirm(prompt string) bool {
	if s.Config.Yes {
		return true
	}

	fmt.Print(prompt)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

// resolve maps a "N" or "N.M" screen reference onto an entity id.
func (s *threadScreen) resolve(ref string) (id string, isReply bool, err error) {
	commentRef, replyRef, nested := strings.Cut(ref, ".")

	view, _, err := s.resolveComment(commentRef)
	if err != nil {
		return "", false, err
	}
	if !nested {
		return view.ID, false, nil
	}

	j, err := strconv.Atoi(replyRef)
	if err != nil || j < 1 || j > len(view.Replies) {
		return "", false, fmt.Errorf("no such reply: %s", ref)
	}
	return view.Replies[j-1].ID, true, nil
}

func (s *threadScreen) resolveComment(ref string) (thread.CommentView, int, error) {
	i, err := strconv.Atoi(ref)
	if err != nil || i < 1 || i > len(s.snap.Comments) {
		return thread.CommentView{}, 0, fmt.Errorf("no such comment: %s", ref)
	}
	return s.snap.Comments[i-1], i - 1, nil
}

func (s *threadScreen) authorOf(id string) (core.Author, bool) {
	for _, view := range s.snap.Comments {
		if view.ID == id {
			return view.Author, true
		}
		for _, reply := range view.Replies {
			if reply.ID == id {
				return reply.Author, true
			}
		}
	}
	return core.Author{}, false
}
