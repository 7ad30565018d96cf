// Package feed syndicates the most recently published polls as RSS and Atom.
package feed

import (
	"context"
	"time"

	"github.com/gorilla/feeds"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/platform/markdown"
)

const (
	Title       = "Latest polls"
	Description = "The latest polls submitted by your co-workers"
)

type Source interface {
	Recent(ctx context.Context, limit int) ([]poll.Poll, error)
}

type Builder struct {
	src     Source
	baseURL string
	size    int
	now     func() time.Time
}

// New builds feeds of at most size polls whose links are rooted at baseURL.
func New(src Source, baseURL string, size int) *Builder {
	return &Builder{src: src, baseURL: baseURL, size: size, now: time.Now}
}

func (b *Builder) Build(ctx context.Context) (*feeds.Feed, error) {
	polls, err := b.src.Recent(ctx, b.size)
	if err != nil {
		return nil, err
	}

	f := &feeds.Feed{
		Title:       Title,
		Link:        &feeds.Link{Href: b.baseURL + "/feeds/latest"},
		Description: Description,
		Created:     b.now().UTC(),
		Items:       make([]*feeds.Item, 0, len(polls)),
	}

	for i := range polls {
		p := &polls[i]
		html, err := markdown.Render(p.Description)
		if err != nil {
			return nil, err
		}
		link := b.baseURL + "/api/v1" + p.Permalink()
		item := &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: html,
			Author:      &feeds.Author{Name: p.CreatorName},
		}
		if p.PublishedAt != nil {
			item.Created = p.PublishedAt.UTC()
		}
		f.Items = append(f.Items, item)
	}
	if len(f.Items) > 0 && !f.Items[0].Created.IsZero() {
		f.Created = f.Items[0].Created
	}
	return f, nil
}

func (b *Builder) RSS(ctx context.Context) (string, error) {
	f, err := b.Build(ctx)
	if err != nil {
		return "", err
	}
	return f.ToRss()
}

func (b *Builder) Atom(ctx context.Context) (string, error) {
	f, err := b.Build(ctx)
	if err != nil {
		return "", err
	}
	return f.ToAtom()
}
