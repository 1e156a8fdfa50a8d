package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/config"
	"github.com/oksasatya/yatter-client/internal/container"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	"github.com/oksasatya/yatter-client/internal/interface/viewmodel"
	"github.com/oksasatya/yatter-client/internal/state"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

const usage = `usage: yatter <command> [flags]

commands:
  start                      show which screen a fresh launch opens
  register -u NAME -p PASS   create an account and log in
  login -u NAME -p PASS      log in
  logout                     forget the stored session
  whoami                     print the logged-in account
  post [-m FILE]... TEXT     post a status, optionally with media
  timeline [-home] [-media] [-limit N] [-max ID] [-since ID]
  follow NAME | unfollow NAME
  following NAME | followers NAME
`

var errUsage = errors.New("bad usage")

func main() {
	_ = godotenv.Load() // load .env if present

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	logger.SetOutput(stderr)

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		helpers.LogError(logger, "init failed", err, nil)
		return 1
	}
	defer func() { _ = c.Close() }()

	cli := &cli{c: c, out: stdout, logger: logger}
	err = cli.dispatch(ctx, args[0], args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprint(stderr, usage)
		return 2
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

type cli struct {
	c      *container.Container
	out    io.Writer
	logger *logrus.Logger
}

func (a *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "start":
		return a.start(ctx)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := a.c.LogoutService.Execute(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "post":
		return a.post(ctx, args)
	case "timeline":
		return a.timeline(ctx, args)
	case "follow", "unfollow":
		return a.relationship(ctx, cmd, args)
	case "following", "followers":
		return a.accounts(ctx, cmd, args)
	default:
		return errUsage
	}
}

// screen runs fn with a fresh Loop, then drains it once fn returns. The Loop
// outlives the command context so results of cancelled tasks still land and
// vm.Wait returns; the view models see cancellation through the ctx they are
// built with.
func (a *cli) screen(fn func(d state.Dispatcher)) {
	loop := state.NewLoop(a.logger)
	done := make(chan struct{})
	go func() {
		_ = loop.Run(context.Background())
		close(done)
	}()
	fn(loop)
	loop.Close()
	<-done
}

func (a *cli) start(ctx context.Context) error {
	var dest string
	a.screen(func(d state.Dispatcher) {
		vm := viewmodel.NewMainViewModel(ctx, a.c.CheckLoginService, d, a.logger)
		defer vm.Close()
		vm.NavigateToLogin.Observe(func(viewmodel.Nav) { dest = "login" })
		vm.NavigateToPublicTimeline.Observe(func(viewmodel.Nav) { dest = "public timeline" })
		vm.OnCreate()
		vm.Wait()
	})
	fmt.Fprintln(a.out, dest)
	return nil
}

func credentials(name string, args []string) (string, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	return *username, *password, nil
}

func (a *cli) login(ctx context.Context, args []string) error {
	username, password, err := credentials("login", args)
	if err != nil {
		return err
	}
	var ui viewmodel.LoginUiState
	navigated := false
	a.screen(func(d state.Dispatcher) {
		vm := viewmodel.NewLoginViewModel(ctx, a.c.Login, d, a.logger)
		defer vm.Close()
		vm.NavigateToPublicTimeline.Observe(func(viewmodel.Nav) { navigated = true })
		vm.OnChangedUsername(username)
		vm.OnChangedPassword(password)
		vm.OnClickLogin()
		vm.Wait()
		ui = vm.UiState.Value()
	})
	if !navigated {
		return errors.New(ui.ErrorMessage)
	}
	fmt.Fprintf(a.out, "logged in as %s\n", username)
	return nil
}

func (a *cli) register(ctx context.Context, args []string) error {
	username, password, err := credentials("register", args)
	if err != nil {
		return err
	}
	var ui viewmodel.RegisterAccountUiState
	navigated := false
	a.screen(func(d state.Dispatcher) {
		vm := viewmodel.NewRegisterAccountViewModel(ctx, a.c.RegisterAccount, d, a.logger)
		defer vm.Close()
		vm.NavigateToPublicTimeline.Observe(func(viewmodel.Nav) { navigated = true })
		vm.OnChangedUsername(username)
		vm.OnChangedPassword(password)
		vm.OnClickRegister()
		vm.Wait()
		ui = vm.UiState.Value()
	})
	if !navigated {
		return errors.New(ui.ErrorMessage)
	}
	fmt.Fprintf(a.out, "registered and logged in as %s\n", username)
	return nil
}

type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

func (a *cli) post(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var media stringList
	fs.Var(&media, "m", "media file to attach (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")

	var ui viewmodel.PostUiState
	posted := false
	a.screen(func(d state.Dispatcher) {
		vm := viewmodel.NewPostViewModel(ctx, a.c.PostStatus, a.c.GetMeService, d, a.logger)
		defer vm.Close()
		vm.GoBack.Observe(func(viewmodel.Nav) { posted = true })
		vm.OnChangedStatusText(text)
		vm.OnChangedAttachments(media)
		vm.OnClickPost()
		vm.Wait()
		ui = vm.UiState.Value()
	})
	if !posted {
		return errors.New(ui.ErrorMessage)
	}
	fmt.Fprintln(a.out, "posted")
	return nil
}

func (a *cli) timeline(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("timeline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	home := fs.Bool("home", false, "home timeline of the logged-in account")
	var q repo.TimelineQuery
	fs.BoolVar(&q.OnlyMedia, "media", false, "only statuses with media")
	fs.IntVar(&q.Limit, "limit", repo.DefaultTimelineLimit, "max statuses")
	fs.StringVar(&q.MaxID, "max", "", "statuses older than this id")
	fs.StringVar(&q.SinceID, "since", "", "statuses newer than this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *home {
		statuses, err := a.c.Statuses.FindAllHome(ctx, q)
		if err != nil {
			return err
		}
		a.printStatuses(viewmodel.ConvertStatuses(statuses))
		return nil
	}

	var ui viewmodel.PublicTimelineUiState
	a.screen(func(d state.Dispatcher) {
		vm := viewmodel.NewPublicTimelineViewModel(ctx, a.c.Statuses, d, a.logger)
		defer vm.Close()
		vm.Query = q
		vm.OnResume()
		vm.Wait()
		ui = vm.UiState.Value()
	})
	if ui.ErrorMessage != "" {
		return errors.New(ui.ErrorMessage)
	}
	a.printStatuses(ui.StatusList)
	return nil
}

func (a *cli) printStatuses(list []viewmodel.StatusBindingModel) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "(no statuses)")
		return
	}
	for _, s := range list {
		name := s.Username
		if s.DisplayName != "" {
			name = s.DisplayName + " @" + s.Username
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", s.ID, name, s.Content)
		for _, m := range s.AttachmentMediaList {
			fmt.Fprintf(a.out, "    %s %s\n", m.Type, m.URL)
		}
	}
}

func (a *cli) whoami(ctx context.Context) error {
	me, err := a.c.GetMeService.Execute(ctx)
	if err != nil {
		return err
	}
	if me == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s) following=%d followers=%d\n",
		me.Username.Value(), me.DisplayNameOrEmpty(), me.FollowingCount, me.FollowerCount)
	return nil
}

func (a *cli) me(ctx context.Context) (entity.Me, error) {
	me, err := a.c.GetMeService.Execute(ctx)
	if err != nil {
		return entity.Me{}, err
	}
	if me == nil {
		return entity.Me{}, errors.New("not logged in")
	}
	return *me, nil
}

func (a *cli) relationship(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	me, err := a.me(ctx)
	if err != nil {
		return err
	}
	target := entity.NewUsername(args[0])
	var rel entity.Relationship
	if cmd == "follow" {
		rel, err = a.c.RelationshipService.Follow(ctx, me, target)
	} else {
		rel, err = a.c.RelationshipService.Unfollow(ctx, me, target)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s following=%t followed_by=%t\n", rel.Target.Value(), rel.Following, rel.FollowedBy)
	return nil
}

func (a *cli) accounts(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	of := entity.NewUsername(args[0])
	var (
		list []entity.Account
		err  error
	)
	if cmd == "following" {
		list, err = a.c.Relationships.Followings(ctx, of)
	} else {
		list, err = a.c.Relationships.Followers(ctx, of)
	}
	if err != nil {
		return err
	}
	for _, acc := range list {
		fmt.Fprintln(a.out, acc.Username.Value())
	}
	return nil
}
