// Package view projects widget state into view-model records. The functions
// here are pure; HTML generation lives in html.go.
package view

import (
	"strconv"

	"routine-advisor-be/internal/entity"
	"routine-advisor-be/pkg/conversation"
	"routine-advisor-be/pkg/selection"
)

const (
	PlaceholderNoCategory = "Select a category to view products"

	timeLayout = "15:04"
)

type CardView struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	Image         string `json:"image"`
	Description   string `json:"description"`
	DescriptionID string `json:"description_id"`
	Selected      bool   `json:"selected"`
}

type TileView struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Image string `json:"image"`
}

type BubbleView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Time    string `json:"time"`
	Latest  bool   `json:"latest"`
}

// Page is everything the widget shows at once.
type Page struct {
	Categories  []string       `json:"categories"`
	Category    string         `json:"category"`
	Query       string         `json:"query"`
	Placeholder string         `json:"placeholder,omitempty"`
	Cards       []CardView     `json:"cards"`
	Selected    []TileView     `json:"selected"`
	Chat        []BubbleView   `json:"chat"`
	Notice      *entity.Notice `json:"notice,omitempty"`
	Busy        bool           `json:"busy"`
}

// RenderCatalog builds one card per product and marks the ones present in sel.
func RenderCatalog(products []entity.Product, sel *selection.Store) []CardView {
	cards := make([]CardView, 0, len(products))
	for i, p := range products {
		p = p.WithKey()
		cards = append(cards, CardView{
			Key:           p.Key,
			Name:          p.Name,
			Brand:         p.Brand,
			Image:         p.Image,
			Description:   p.Description,
			DescriptionID: "desc-" + strconv.Itoa(i),
			Selected:      sel.Contains(p.Key),
		})
	}
	return cards
}

func RenderSelected(sel *selection.Store) []TileView {
	items := sel.Snapshot()
	tiles := make([]TileView, 0, len(items))
	for _, p := range items {
		tiles = append(tiles, TileView{
			Key:   p.Key,
			Name:  p.Name,
			Brand: p.Brand,
			Image: p.Image,
		})
	}
	return tiles
}

// RenderChat returns the visible turns as bubbles. Times come from the turns
// themselves so rendering twice gives the same result.
func RenderChat(conv *conversation.Store) []BubbleView {
	turns := conv.Visible()
	bubbles := make([]BubbleView, 0, len(turns))
	for _, t := range turns {
		if t.Role != entity.RoleUser && t.Role != entity.RoleAssistant {
			continue
		}
		bubbles = append(bubbles, BubbleView{
			Role:    t.Role,
			Content: t.Content,
			Time:    t.CreatedAt.Format(timeLayout),
		})
	}
	if n := len(bubbles); n > 0 {
		bubbles[n-1].Latest = true
	}
	return bubbles
}

// SelectedKeys reads back which cards are marked selected.
func SelectedKeys(cards []CardView) []string {
	var keys []string
	for _, c := range cards {
		if c.Selected {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
