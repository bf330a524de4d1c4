package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"portfolio_site_go/config"
	"portfolio_site_go/models"
	"portfolio_site_go/services/dateformat"

	"github.com/spf13/cobra"
)

// postFlags are the editable post fields shared by create and update.
type postFlags struct {
	title       string
	excerpt     string
	content     string
	contentFile string
	tags        string
	publish     bool
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Post title")
	cmd.Flags().StringVar(&f.excerpt, "excerpt", "", "Short summary shown in lists")
	cmd.Flags().StringVar(&f.content, "content", "", "Markdown body")
	cmd.Flags().StringVar(&f.contentFile, "content-file", "", "Read the Markdown body from a file")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tags")
	cmd.Flags().BoolVar(&f.publish, "publish", false, "Publish the post")
}

// body returns the Markdown body from --content or --content-file.
func (f *postFlags) body() (string, error) {
	if f.contentFile == "" {
		return f.content, nil
	}
	if f.content != "" {
		return "", fmt.Errorf("use either --content or --content-file, not both")
	}
	data, err := os.ReadFile(f.contentFile)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}
	return string(data), nil
}

func (a *app) newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List and manage blog posts",
		Long: `List and manage blog posts.

Examples:
  siteadmin posts list                          # First page of posts
  siteadmin posts list --page 2 --size 20       # Another page
  siteadmin posts get 12                        # Show one post
  siteadmin posts create --title "Hello" --content-file hello.md --publish
  siteadmin posts update 12 --publish=false     # Unpublish
  siteadmin posts delete 12`,
	}
	cmd.AddCommand(
		a.newPostsListCmd(),
		a.newPostsGetCmd(),
		a.newPostsCreateCmd(),
		a.newPostsUpdateCmd(),
		a.newPostsDeleteCmd(),
	)
	return cmd
}

func (a *app) newPostsListCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.publicClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			result, err := client.ListPosts(ctx, page, config.ClampPageSize(size))
			if err != nil {
				return describeError("failed to list posts", err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(result)
			}
			return a.outputPostsTable(result, formatter(cfg), cfg.Defaults.Locale)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", config.DefaultPostsPerPage, "Posts per page (max 100)")
	return cmd
}

func (a *app) outputPostsTable(result *models.PostPage, dates *dateformat.Formatter, locale string) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tTITLE")
	fmt.Fprintln(w, "--\t----\t------\t-----")

	for _, p := range result.Items {
		status := "draft"
		if p.IsPublished {
			status = "published"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			p.ID,
			dates.FormatDate(p.PublishedAt(), locale, dateformat.StyleMedium),
			status,
			truncate(p.Title, 60),
		)
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d posts)\n", result.Page, result.TotalPages(), result.Total)
	return w.Flush()
}

func (a *app) newPostsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, cfg, err := a.publicClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			post, err := client.GetPost(ctx, id)
			if err != nil {
				return describeError(fmt.Sprintf("failed to get post %d", id), err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(post)
			}

			dates := formatter(cfg)
			fmt.Fprintf(a.out, "ID:        %d\n", post.ID)
			fmt.Fprintf(a.out, "Title:     %s\n", post.Title)
			fmt.Fprintf(a.out, "Published: %s\n", strconv.FormatBool(post.IsPublished))
			fmt.Fprintf(a.out, "Date:      %s\n", dates.FormatDateTime(post.PublishedAt(), cfg.Defaults.Locale))
			if len(post.Tags) > 0 {
				fmt.Fprintf(a.out, "Tags:      %s\n", strings.Join(post.Tags, ", "))
			}
			if post.Excerpt != "" {
				fmt.Fprintf(a.out, "Excerpt:   %s\n", post.Excerpt)
			}
			fmt.Fprintf(a.out, "\n%s\n", post.Content)
			return nil
		},
	}
}

func (a *app) newPostsCreateCmd() *cobra.Command {
	var f postFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.title) == "" {
				return fmt.Errorf("--title is required")
			}
			content, err := f.body()
			if err != nil {
				return err
			}
			client, cfg, err := a.authClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			created, err := client.CreatePost(ctx, &models.Post{
				Title:       f.title,
				Excerpt:     f.excerpt,
				Content:     content,
				Tags:        parseTags(f.tags),
				IsPublished: f.publish,
			})
			if err != nil {
				return describeError("failed to create post", err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(created)
			}
			a.printSuccess("Post created: %d %s", created.ID, created.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newPostsUpdateCmd() *cobra.Command {
	var f postFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a post",
		Long: `Update a post. Only the flags you pass are changed.

Examples:
  siteadmin posts update 12 --title "New title"
  siteadmin posts update 12 --publish=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := &models.PostPatch{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &f.title
			}
			if flags.Changed("excerpt") {
				patch.Excerpt = &f.excerpt
			}
			if flags.Changed("content") || flags.Changed("content-file") {
				content, err := f.body()
				if err != nil {
					return err
				}
				patch.Content = &content
			}
			if flags.Changed("tags") {
				tags := parseTags(f.tags)
				patch.Tags = &tags
			}
			if flags.Changed("publish") {
				patch.IsPublished = &f.publish
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}

			client, cfg, err := a.authClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			updated, err := client.UpdatePost(ctx, id, patch)
			if err != nil {
				return describeError(fmt.Sprintf("failed to update post %d", id), err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(updated)
			}
			a.printSuccess("Post updated: %d %s", updated.ID, updated.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newPostsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post. This cannot be undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, cfg, err := a.authClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			if err := client.DeletePost(ctx, id); err != nil {
				return describeError(fmt.Sprintf("failed to delete post %d", id), err)
			}
			a.printSuccess("Post deleted: %d", id)
			return nil
		},
	}
}
