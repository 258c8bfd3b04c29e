package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/air846/personal-blog-system/internal/browser"
	"github.com/air846/personal-blog-system/internal/config"
	"github.com/air846/personal-blog-system/internal/logging"
	"github.com/air846/personal-blog-system/internal/tui"
	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/session"
	"github.com/air846/personal-blog-system/pkg/storage"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var (
	errUsage    = errors.New("usage")
	// errReported marks failures the notifier has already shown.
	errReported = errors.New("reported")
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(stdout, "blog "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(stdout)
		return nil
	case "", "login", "logout", "whoami", "open":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		printHelp(stderr)
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch cmd {
	case "":
		return runTUI(cfg)
	case "open":
		return runOpen(cfg, args[1:], stdout)
	}

	cli := &cliNotifier{w: stderr}
	e, err := setup(cfg, cli, cli)
	if err != nil {
		return err
	}
	defer e.Close()

	switch cmd {
	case "login":
		return runLogin(e, stdin, stdout)
	case "logout":
		return runLogout(e, stdout)
	default:
		return runWhoami(e, stdout)
	}
}

// env is the wired client stack shared by the TUI and the subcommands.
type env struct {
	client  *client.Client
	session *session.Store
	store   storage.Storage
	logFile *os.File
}

// setup opens the log file and storage and wires the client to the session
// store. A 401 seen by the client invalidates the store.
func setup(cfg *config.Config, notifier client.Notifier, navigator client.Navigator) (*env, error) {
	logFile, err := logging.OpenFile(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	logger, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logFile})
	if err != nil {
		logFile.Close() //nolint:errcheck
		return nil, err
	}

	store, err := storage.Open(cfg.Storage, cfg.StateDir)
	if err != nil {
		logFile.Close() //nolint:errcheck
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var sess *session.Store
	c := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithStorage(store),
		client.WithNotifier(notifier),
		client.WithNavigator(navigator),
		client.WithLogger(logger),
		client.WithOnUnauthorized(func() {
			if sess != nil {
				sess.Invalidate()
			}
		}),
	)
	sess, err = session.New(c, store,
		session.WithNotifier(notifier),
		session.WithNavigator(navigator),
		session.WithLogger(logger),
	)
	if err != nil {
		storage.Close(store) //nolint:errcheck
		logFile.Close()      //nolint:errcheck
		return nil, fmt.Errorf("restore session: %w", err)
	}

	logger.Debug("client ready", "api", cfg.APIURL, "storage", cfg.Storage, "logged_in", sess.IsLoggedIn())
	return &env{client: c, session: sess, store: store, logFile: logFile}, nil
}

func (e *env) Close() {
	if err := storage.Close(e.store); err != nil {
		slog.Warn("close storage", "err", err)
	}
	e.logFile.Close() //nolint:errcheck
}

func runTUI(cfg *config.Config) error {
	bridge := tui.NewBridge()
	e, err := setup(cfg, bridge, bridge)
	if err != nil {
		return err
	}
	defer e.Close()

	// Only a 401 sends the user back to the login view; other failures
	// leave the cached profile in place.
	if e.session.IsLoggedIn() {
		e.session.FetchProfile(context.Background()) //nolint:errcheck
	}

	app := tui.NewApp(tui.Deps{
		API:        e.client,
		Session:    e.session,
		Bridge:     bridge,
		ArticleURL: cfg.ArticleURL,
		WebURL:     cfg.WebURL,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(e *env, stdin io.Reader, stdout io.Writer) error {
	in := bufio.NewReader(stdin)

	fmt.Fprint(stdout, "username: ")
	username, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Fprint(stdout, "password: ")
	password, err := readPassword(stdin, in)
	fmt.Fprintln(stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	if err := e.session.Login(context.Background(), username, password); err != nil {
		return errReported
	}
	if u := e.session.User(); u != nil {
		fmt.Fprintf(stdout, "Signed in as %s\n", u.DisplayName())
	}
	return nil
}

// readPassword reads without echo when stdin is a terminal, otherwise it
// takes the next line.
func readPassword(stdin io.Reader, in *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		b, err := term.ReadPassword(f.Fd())
		return string(b), err
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(e *env, stdout io.Writer) error {
	if !e.session.IsLoggedIn() {
		fmt.Fprintln(stdout, "Already logged out.")
		return nil
	}
	e.session.Logout()
	return nil
}

func runWhoami(e *env, stdout io.Writer) error {
	if !e.session.IsLoggedIn() {
		fmt.Fprintln(stdout, "Not signed in. Run: blog login")
		return nil
	}
	if err := e.session.FetchProfile(context.Background()); err != nil {
		if client.IsUnauthorized(err) {
			fmt.Fprintln(stdout, "Session expired. Run: blog login")
			return errReported
		}
		// Fall back to the cached profile.
	}
	u := e.session.User()
	if u == nil {
		return errors.New("profile unavailable")
	}
	printProfile(stdout, u)
	return nil
}

func runOpen(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: blog open <article-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid article id %q", args[0])
	}
	url := cfg.ArticleURL(id)
	if err := browser.Open(url); err != nil {
		fmt.Fprintln(stdout, url)
	}
	return nil
}
