package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/filex"
)

// maxImageBytes bounds the files accepted by the image command.
const maxImageBytes = 10 << 20

var getMultiline = GetMultiline

const dateLayout = "2006-01-02 15:04"

func (a *App) List(ctx context.Context) error {
	posts, err := a.postService.List(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Author.Name, p.CreatedAt.Local().Format(dateLayout))
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, id string) error {
	p, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printPost(p)
	return nil
}

func (a *App) printPost(p *models.Post) {
	fmt.Fprintf(a.out, "%s\n%s\n", p.Title, strings.Repeat("=", len([]rune(p.Title))))
	fmt.Fprintf(a.out, "by %s <%s>, %s", p.Author.Name, p.Author.Email, p.CreatedAt.Local().Format(dateLayout))
	if p.UpdatedAt.After(p.CreatedAt) {
		fmt.Fprintf(a.out, " (updated %s)", p.UpdatedAt.Local().Format(dateLayout))
	}
	fmt.Fprintln(a.out)
	if p.ImageURL != "" {
		fmt.Fprintf(a.out, "image: %s\n", p.ImageURL)
	}
	fmt.Fprintf(a.out, "\n%s\n", p.Content)
}

func (a *App) New(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	p, err := a.postService.Create(ctx, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post created: %s\n", p.ID)
	return nil
}

// Edit replaces title and content; empty input keeps the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "New title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "New content (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	p, err := a.postService.Update(ctx, id, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post updated: %s\n", p.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.postService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post deleted: %s\n", id)
	return nil
}

// Image uploads the file at path as the post's cover image.
func (a *App) Image(ctx context.Context, id, path string) error {
	data, err := filex.ReadLimited(path, maxImageBytes)
	if err != nil {
		return err
	}

	key, err := a.postService.UploadImage(ctx, id, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Image uploaded: %s\n", key)
	return nil
}
