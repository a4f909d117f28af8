// Command postctl is a small admin helper for managing posts from the
// terminal. It logs in against the content API with the same credentials
// the dashboard uses and keeps the session cookie in memory for the
// duration of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"inkwell/internal/client"
	"inkwell/internal/model"
	"inkwell/internal/session"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	publishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	draftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	apiURL := flag.String("api", "", "Content API base URL (defaults to API_URL)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	baseURL := *apiURL
	if baseURL == "" {
		baseURL = os.Getenv("API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}

	api := client.New(baseURL, 15*time.Second)
	sess := session.NewMemory()
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "list":
		err = runList(ctx, api, sess)
	case "show":
		err = runShow(ctx, api, sess, flag.Arg(1))
	case "delete":
		err = runDelete(ctx, api, sess, flag.Arg(1))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: postctl [-api URL] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  list           List all posts")
	fmt.Fprintln(os.Stderr, "  show <slug>    Show a single post by slug")
	fmt.Fprintln(os.Stderr, "  delete <id>    Delete a post (requires ADMIN_USERNAME and ADMIN_PASSWORD)")
}

func runList(ctx context.Context, api *client.Client, sess session.Session) error {
	posts := api.ListPosts(ctx, sess)
	if len(posts) == 0 {
		fmt.Println(mutedStyle.Render("no posts"))
		return nil
	}
	for _, p := range posts {
		fmt.Printf("%s  %s  %s\n", badge(p.Published), titleStyle.Render(p.Title),
			mutedStyle.Render(fmt.Sprintf("id=%s slug=%s", p.ID, p.Slug)))
	}
	return nil
}

func runShow(ctx context.Context, api *client.Client, sess session.Session, slug string) error {
	if slug == "" {
		return fmt.Errorf("show requires a slug")
	}
	post, err := api.GetPostBySlug(ctx, sess, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("no post with slug %q", slug)
	}
	fmt.Println(titleStyle.Render(post.Title))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("id=%s  created=%s  %s",
		post.ID, post.CreatedAt.Format("2006-01-02"), statusText(post.Published))))
	fmt.Println()
	fmt.Println(post.Content)
	return nil
}

func runDelete(ctx context.Context, api *client.Client, sess session.Session, id string) error {
	if id == "" {
		return fmt.Errorf("delete requires a post id")
	}
	if err := login(ctx, api, sess); err != nil {
		return err
	}
	if err := api.DeletePost(ctx, sess, model.PostID(id)); err != nil {
		return fmt.Errorf("error deleting post %s: %w", id, err)
	}
	fmt.Println(publishedStyle.Render("deleted ") + id)
	return nil
}

func login(ctx context.Context, api *client.Client, sess session.Session) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}
	ok, err := api.Login(ctx, sess, username, password)
	if err != nil {
		return fmt.Errorf("error logging in: %w", err)
	}
	if !ok {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

func badge(published bool) string {
	if published {
		return publishedStyle.Render("[published]")
	}
	return draftStyle.Render("[draft]    ")
}

func statusText(published bool) string {
	if published {
		return "published"
	}
	return "draft"
}
