// filepath: internal/cli/remote.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"inkhub/internal/client"
	"inkhub/internal/models"
	"inkhub/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DefaultServerURL is where remote commands connect unless told otherwise.
const DefaultServerURL = "http://localhost:8080"

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage a running inkhub server over HTTP",
}

func init() {
	remoteCmd.PersistentFlags().String("server-url", "", "Base URL of the server. (Env: INKHUB_REMOTE_URL)")
	remoteCmd.PersistentFlags().String("token-file", "", "Where the session token is kept. (Env: INKHUB_REMOTE_TOKEN_FILE)")

	loginCmd := &cobra.Command{Use: "login", Short: "Log in and store the session token", Args: cobra.NoArgs, RunE: remoteLogin}
	loginCmd.Flags().String("password", "", "Studio password (prompted when omitted)")

	mediaCmd := &cobra.Command{Use: "media", Short: "List stored media", Args: cobra.NoArgs, RunE: remoteMedia}
	mediaCmd.Flags().String("category", "", "Only this category")
	mediaCmd.Flags().String("type", "", "image or video")
	mediaCmd.Flags().Int("limit", 0, "Maximum number of records")

	newsAddCmd := &cobra.Command{Use: "add <title> [body]", Short: "Publish a news post", Args: cobra.RangeArgs(1, 2), RunE: remoteNewsAdd}
	newsAddCmd.Flags().String("image", "", "Image URL for the post")
	newsCmd := &cobra.Command{Use: "news", Short: "List news posts", Args: cobra.NoArgs, RunE: remoteNewsList}
	newsCmd.AddCommand(
		newsAddCmd,
		&cobra.Command{Use: "rm <id>", Short: "Delete a news post", Args: cobra.ExactArgs(1), RunE: remoteNewsDelete},
	)

	remoteCmd.AddCommand(
		loginCmd,
		&cobra.Command{Use: "status", Short: "Show the session state", Args: cobra.NoArgs, RunE: remoteStatus},
		&cobra.Command{Use: "logout", Short: "Discard the session token", Args: cobra.NoArgs, RunE: remoteLogout},
		&cobra.Command{Use: "upload <category> <file>...", Short: "Upload files into a category", Args: cobra.MinimumNArgs(2), RunE: remoteUpload},
		&cobra.Command{Use: "rm <category> <filename>", Short: "Delete a stored file", Args: cobra.ExactArgs(2), RunE: remoteDelete},
		&cobra.Command{Use: "categories", Short: "List categories", Args: cobra.NoArgs, RunE: remoteCategories},
		mediaCmd,
		newsCmd,
		&cobra.Command{Use: "refresh-loop", Short: "Keep the session alive until interrupted", Args: cobra.NoArgs, RunE: remoteRefreshLoop},
	)
	RootCmd.AddCommand(remoteCmd)
}

// remoteSession wires a client and a session manager sharing one token file.
func remoteSession(cmd *cobra.Command) (*client.Client, *session.Manager, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, nil, err
	}
	v.SetDefault("remote.url", DefaultServerURL)
	v.SetDefault("remote.token_file", session.DefaultTokenPath())

	c := client.New(v.GetString("remote.url"))
	mgr := session.NewManager(session.NewFileStore(v.GetString("remote.token_file")), c)
	c.Auth = mgr
	return c, mgr, nil
}

func remoteLogin(cmd *cobra.Command, args []string) error {
	_, mgr, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = promptPassword(cmd.OutOrStdout(), "Password: "); err != nil {
			return err
		}
	}
	if err := mgr.Login(cmd.Context(), password); err != nil {
		if client.IsUnauthorized(err) {
			return errors.New("login failed: invalid password")
		}
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
	return nil
}

func promptPassword(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	return string(pass), err
}

func remoteStatus(cmd *cobra.Command, args []string) error {
	c, mgr, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session: %s\n", mgr.State())

	info, err := c.Info(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Server:  unreachable (%v)\n", err)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server:  %s %s, up since %s, ffmpeg=%t\n",
		info.ServiceName, info.Version, info.UptimeSince.Format("2006-01-02 15:04"), info.FFmpegAvailable)
	return nil
}

func remoteLogout(cmd *cobra.Command, args []string) error {
	_, mgr, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	if err := mgr.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func remoteUpload(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	resp, err := c.Upload(cmd.Context(), args[0], args[1:]...)
	if err != nil {
		return wrapRemoteErr(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	for _, f := range resp.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", f.ID, f.URL)
	}
	return nil
}

func remoteDelete(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	if err := c.DeleteMedia(cmd.Context(), args[0], args[1]); err != nil {
		return wrapRemoteErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", args[0], args[1])
	return nil
}

func remoteCategories(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	cats, err := c.Categories(cmd.Context())
	if err != nil {
		return wrapRemoteErr(err)
	}
	for _, cat := range cats {
		fmt.Fprintln(cmd.OutOrStdout(), cat)
	}
	return nil
}

func remoteMedia(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	category, _ := cmd.Flags().GetString("category")
	mediaType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	records, err := c.ListMedia(cmd.Context(), models.MediaFilter{Category: category, Type: models.MediaType(mediaType), Limit: limit})
	if err != nil {
		return wrapRemoteErr(err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSIZE\tMODIFIED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Type, r.Size, r.ModifiedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func remoteNewsList(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	items, err := c.ListNews(cmd.Context(), true)
	if err != nil {
		return wrapRemoteErr(err)
	}
	for _, it := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", it.ID, it.CreatedAt.Format("2006-01-02"), it.Title)
	}
	return nil
}

func remoteNewsAdd(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	payload := models.NewsCreatePayload{Title: args[0]}
	if len(args) > 1 {
		payload.Body = args[1]
	}
	payload.Image, _ = cmd.Flags().GetString("image")

	item, err := c.CreateNews(cmd.Context(), payload)
	if err != nil {
		return wrapRemoteErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", item.ID)
	return nil
}

func remoteNewsDelete(cmd *cobra.Command, args []string) error {
	c, _, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	if err := c.DeleteNews(cmd.Context(), args[0]); err != nil {
		return wrapRemoteErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func remoteRefreshLoop(cmd *cobra.Command, args []string) error {
	_, mgr, err := remoteSession(cmd)
	if err != nil {
		return err
	}
	if !mgr.IsAuthenticated() {
		return errors.New("not logged in; run 'inkhub remote login' first")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	states, unsubscribe := mgr.Subscribe()
	defer unsubscribe()
	go func() {
		for s := range states {
			fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", s)
			if s == session.Absent {
				stop()
			}
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Refreshing every %s, Ctrl-C to stop\n", session.DefaultRefreshInterval)
	mgr.Run(ctx)
	if !mgr.IsAuthenticated() {
		return errors.New("session ended; log in again")
	}
	return nil
}

// wrapRemoteErr turns session and 401 failures into a login hint.
func wrapRemoteErr(err error) error {
	if errors.Is(err, session.ErrUnauthenticated) || client.IsUnauthorized(err) {
		return fmt.Errorf("%w; run 'inkhub remote login'", err)
	}
	return err
}

