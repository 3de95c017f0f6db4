package rss

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hrygo/alemeno/internal/profile"
	"github.com/hrygo/alemeno/store"
)

const (
	feedTitle       = "Alemeno items"
	feedDescription = "Items stored in this Alemeno instance."
	// maxRSSItemCount caps the number of entries in one feed.
	maxRSSItemCount = 100
)

type RSSService struct {
	Profile  *profile.Profile
	Store    *store.Store
	markdown goldmark.Markdown
}

func NewRSSService(profile *profile.Profile, store *store.Store) *RSSService {
	return &RSSService{
		Profile: profile,
		Store:   store,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
		),
	}
}

func (s *RSSService) RegisterRoutes(g *echo.Group) {
	g.GET("/api/v1/items/rss.xml", s.GetItemsRSS)
}

func (s *RSSService) GetItemsRSS(c echo.Context) error {
	ctx := c.Request().Context()
	itemList, err := s.Store.ListItems(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}

	rss, err := s.generateRSSFromItemList(ctx, itemList, s.baseURL(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=UTF-8")
	return c.String(http.StatusOK, rss)
}

func (s *RSSService) baseURL(c echo.Context) string {
	if s.Profile.InstanceURL != "" {
		return strings.TrimRight(s.Profile.InstanceURL, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

// generateRSSFromItemList lists items newest first. Descriptions are
// rendered from markdown.
func (s *RSSService) generateRSSFromItemList(_ context.Context, itemList []*store.Item, baseURL string) (string, error) {
	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: baseURL},
		Description: feedDescription,
	}

	count := min(len(itemList), maxRSSItemCount)
	feed.Items = make([]*feeds.Item, 0, count)
	for i := len(itemList) - 1; i >= 0 && len(feed.Items) < count; i-- {
		item := itemList[i]
		link := fmt.Sprintf("%s/api/v1/items/%d", baseURL, item.ID)
		feedItem := &feeds.Item{
			Id:    link,
			Title: item.Name,
			Link:  &feeds.Link{Href: link},
		}
		if item.Description != nil && *item.Description != "" {
			description, err := s.renderMarkdown(*item.Description)
			if err != nil {
				return "", err
			}
			feedItem.Description = description
		}
		feed.Items = append(feed.Items, feedItem)
	}

	return feed.ToRss()
}

func (s *RSSService) renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
