package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/spec"
)

// githubRepo is the slice of the GitHub repository object we need.
type githubRepo struct {
	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
}

func newFetchCmd(app *App) *cobra.Command {
	var (
		repo    string
		project string
	)
	cmd := &cobra.Command{
		Use:   "fetch <org>",
		Short: "Add a GitHub organization's repositories as clone targets",
		Long: `Lists the organization's repositories over the GitHub API and records
each one as a clone-target module under a 'lang: any' project, creating
the project if the specification has none. Run 'treegen up' afterwards
to perform the clones. Set GITHUB_TOKEN for private organizations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org := args[0]
			repos, err := listOrgRepos(cmd.Context(), org)
			if err != nil {
				return err
			}
			if repo != "" {
				repos = filterRepos(repos, repo)
				if len(repos) == 0 {
					return fmt.Errorf("repository %s not found in organization %s", repo, org)
				}
			}
			if len(repos) == 0 {
				return fmt.Errorf("organization %s has no repositories", org)
			}

			text := "- name: " + org + "\n  lang: any\n"
			if spec.Exists(app.SpecPath()) {
				text, err = app.LoadSpecText()
				if err != nil {
					return err
				}
			}
			cfg, err := app.ParseSpec(text)
			if err != nil {
				return err
			}

			index, ok := cloneProject(cfg, project)
			if !ok {
				if project != "" {
					return fmt.Errorf("project %s not found or not 'lang: any'", project)
				}
				text = edit.AppendProject(text, "- name: "+org+"\n  lang: any\n")
				cfg, err = app.ParseSpec(text)
				if err != nil {
					return err
				}
				index = len(cfg.Projects) - 1
			}

			original := text
			for _, r := range repos {
				text, err = edit.AddCloneTarget(text, index, nil, r.CloneURL)
				if err != nil {
					return err
				}
			}
			if text == original {
				fmt.Fprintln(app.Out, "All repositories are already recorded.")
				return nil
			}

			app.ShowDiff(original, text)
			if !app.Confirm(fmt.Sprintf("Record %d clone target(s)?", len(repos))) {
				fmt.Fprintln(app.Out, "Aborted.")
				return nil
			}
			if err := app.WriteSpecText(text); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Recorded. Run 'treegen up' to clone.")
			return nil
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "Only add this repository")
	cmd.Flags().StringVar(&project, "project", "", "Project to record clone targets under (default: first 'lang: any' project)")
	return cmd
}

// cloneProject picks the project clone targets go into: the named one
// when given, otherwise the first project with the 'any' language.
func cloneProject(cfg *spec.Config, name string) (int, bool) {
	for i := range cfg.Projects {
		p := &cfg.Projects[i]
		if p.Lang != "any" {
			continue
		}
		if name == "" || p.Name == name {
			return i, true
		}
	}
	return 0, false
}

func filterRepos(repos []githubRepo, name string) []githubRepo {
	for _, r := range repos {
		if r.Name == name {
			return []githubRepo{r}
		}
	}
	return nil
}

func listOrgRepos(ctx context.Context, org string) ([]githubRepo, error) {
	url := fmt.Sprintf("https://api.github.com/orgs/%s/repos?per_page=100", org)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build GitHub request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list repositories for %s: %w", org, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GitHub API returned %s for %s: %s", resp.Status, org, string(body))
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode GitHub response: %w", err)
	}
	return repos, nil
}
