package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"portfolio_site_go/models"

	"github.com/spf13/cobra"
)

// projectFlags are the editable project fields shared by create and update.
type projectFlags struct {
	title       string
	description string
	category    string
	image       string
	tags        string
	githubURL   string
	liveURL     string
	order       string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Project title")
	cmd.Flags().StringVar(&f.description, "description", "", "Short description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category label")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.githubURL, "github", "", "Source code URL")
	cmd.Flags().StringVar(&f.liveURL, "live", "", "Live demo URL")
	cmd.Flags().StringVar(&f.order, "order", "", "Sort key; lower sorts first")
}

func (a *app) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List and manage portfolio projects",
		Long: `List and manage portfolio projects.

Examples:
  siteadmin projects list
  siteadmin projects create --title "Portfolio" --tags "Go,templ" --github https://github.com/me/site
  siteadmin projects update 3 --order 1
  siteadmin projects delete 3`,
	}
	cmd.AddCommand(
		a.newProjectsListCmd(),
		a.newProjectsCreateCmd(),
		a.newProjectsUpdateCmd(),
		a.newProjectsDeleteCmd(),
	)
	return cmd
}

func (a *app) newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.publicClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return describeError("failed to list projects", err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(projects)
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDER\tCATEGORY\tTITLE\tTAGS")
			fmt.Fprintln(w, "--\t-----\t--------\t-----\t----")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.Order, p.Category, truncate(p.Title, 40), strings.Join(p.Tags, ","))
			}
			fmt.Fprintf(w, "\nTotal: %d projects\n", len(projects))
			return w.Flush()
		},
	}
}

func (a *app) newProjectsCreateCmd() *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.title) == "" {
				return fmt.Errorf("--title is required")
			}
			client, cfg, err := a.authClient()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cfg)
			defer cancel()

			created, err := client.CreateProject(ctx, &models.Project{
				Title:       f.title,
				Description: f.description,
				Category:    f.category,
				Image:       f.image,
				Tags:        parseTags(f.tags),
				GitHubURL:   f.githubURL,
				LiveURL:     f.liveURL,
				Order:       f.order,
			})
			if err != nil {
				return describeError("failed to create project", err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(created)
			}
			a.printSuccess("Project created: %d %s", created.ID, created.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newProjectsUpdateCmd() *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := &models.ProjectPatch{}
			flags := cmd.Flags()
			for name, dst := range map[string]**string{
				"title":       &patch.Title,
				"description": &patch.Description,
				"category":    &patch.Category,
				"image":       &patch.Image,
				"github":      &patch.GitHubURL,
				"live":        &patch.LiveURL,
				"order":       &patch.Order,
			} {
				if flags.Changed(name) {
					value, _ := flags.GetString(name)
					*dst = &value
				}
			}
			if flags.Changed("tags") {
				tags := parseTags(f.tags)
				patch.Tags = &tags
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

			updated, err := client.UpdateProject(ctx, id, patch)
			if err != nil {
				return describeError(fmt.Sprintf("failed to update project %d", id), err)
			}
			if a.opts.jsonOutput {
				return a.outputJSON(updated)
			}
			a.printSuccess("Project updated: %d %s", updated.ID, updated.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newProjectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project. This cannot be undone",
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

			if err := client.DeleteProject(ctx, id); err != nil {
				return describeError(fmt.Sprintf("failed to delete project %d", id), err)
			}
			a.printSuccess("Project deleted: %d", id)
			return nil
		},
	}
}
