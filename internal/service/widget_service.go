package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"routine-advisor-be/internal/dto"
	"routine-advisor-be/internal/entity"
	"routine-advisor-be/internal/pkg/logger"
	"routine-advisor-be/internal/repository/memory"
	"routine-advisor-be/internal/view"
	"routine-advisor-be/pkg/assistant"
	"routine-advisor-be/pkg/catalog"
	"routine-advisor-be/pkg/events"
	"routine-advisor-be/pkg/llm"
	"routine-advisor-be/pkg/store"
	"routine-advisor-be/pkg/topic"
)

var (
	ErrRequestInFlight = errors.New("an assistant request is already in progress")
	ErrUnknownProduct  = errors.New("product not found")
)

const (
	NoticeSelectFirst       = "Please select one or more products first."
	NoticeGeneratingRoutine = "Generating routine…"
	NoticeThinking          = "Thinking…"
	NoticeNoRoutineReply    = "Could not find a valid response from the AI."
	NoticeNoChatReply       = "AI did not return a valid reply."

	routinePromptPrefix = "Please generate a personalized routine using only these products (JSON): "
)

// ActivityPublisher receives domain activity events. The NATS publisher
// implements it.
type ActivityPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IWidgetService interface {
	Page(ctx context.Context, sessionID string) (*view.Page, error)
	SelectCategory(ctx context.Context, sessionID, category string) (*view.Page, error)
	Search(ctx context.Context, sessionID, query string) (*view.Page, error)
	ToggleProduct(ctx context.Context, sessionID, key string) (*view.Page, error)
	RemoveSelection(ctx context.Context, sessionID, key string) (*view.Page, error)
	ClearSelections(ctx context.Context, sessionID string) (*view.Page, error)
	GenerateRoutine(ctx context.Context, sessionID string) (*view.Page, error)
	SendChat(ctx context.Context, sessionID, text string) (*view.Page, error)
}

type WidgetOptions struct {
	SystemPrompt     string
	RoutineMaxTokens int
	ChatMaxTokens    int
	Now              func() time.Time
}

type widgetService struct {
	sessions  *memory.SessionRepository
	loader    catalog.Loader
	snapshots *store.SelectionSnapshots
	gateway   *assistant.Gateway
	gate      *topic.Gate
	publisher IPublisherService
	activity  ActivityPublisher
	logger    logger.ILogger
	opts      WidgetOptions
}

// NewWidgetService wires the widget. publisher and activity may be nil.
func NewWidgetService(
	sessions *memory.SessionRepository,
	loader catalog.Loader,
	snapshots *store.SelectionSnapshots,
	gateway *assistant.Gateway,
	gate *topic.Gate,
	publisher IPublisherService,
	activity ActivityPublisher,
	log logger.ILogger,
	opts WidgetOptions,
) IWidgetService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RoutineMaxTokens <= 0 {
		opts.RoutineMaxTokens = assistant.DefaultRoutineMaxTokens
	}
	if opts.ChatMaxTokens <= 0 {
		opts.ChatMaxTokens = assistant.DefaultChatMaxTokens
	}
	return &widgetService{
		sessions:  sessions,
		loader:    loader,
		snapshots: snapshots,
		gateway:   gateway,
		gate:      gate,
		publisher: publisher,
		activity:  activity,
		logger:    log,
		opts:      opts,
	}
}

// session returns the live session, restoring the persisted selection when
// it is created.
func (s *widgetService) session(ctx context.Context, sessionID string) *store.Session {
	sess, _ := s.sessions.GetOrCreate(sessionID, func() *store.Session {
		sess := store.NewSession(sessionID, s.opts.SystemPrompt, s.opts.Now)
		snapshot, err := s.snapshots.Load(ctx, sessionID)
		if err != nil {
			s.logger.Warn("WidgetService", "Failed to restore selection", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		sess.Selection.Restore(snapshot)
		return sess
	})
	return sess
}

// update runs fn under the session lock, then publishes the resulting page
// and the activity event fn returned, if any.
func (s *widgetService) update(ctx context.Context, sessionID string, fn func(sess *store.Session) (events.Event, error)) (*view.Page, error) {
	sess := s.session(ctx, sessionID)

	sess.Mu.Lock()
	event, err := fn(sess)
	if err != nil {
		sess.Mu.Unlock()
		return nil, err
	}
	page := s.buildPage(ctx, sess)
	sess.Mu.Unlock()

	s.publishPage(ctx, sessionID, page)
	s.publishActivity(ctx, event)
	return &page, nil
}

func (s *widgetService) Page(ctx context.Context, sessionID string) (*view.Page, error) {
	sess := s.session(ctx, sessionID)

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	page := s.buildPage(ctx, sess)
	return &page, nil
}

func (s *widgetService) SelectCategory(ctx context.Context, sessionID, category string) (*view.Page, error) {
	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		products := s.loadCatalog(ctx, sess)
		sess.Category = category
		sess.Scope = catalog.FilterByCategory(products, category)
		sess.ScopeLoaded = true
		return nil, nil
	})
}

func (s *widgetService) Search(ctx context.Context, sessionID, query string) (*view.Page, error) {
	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		sess.Query = query
		if sess.Category == "" && len(sess.Scope) == 0 {
			sess.Scope = s.loadCatalog(ctx, sess)
		}
		sess.ScopeLoaded = true
		return nil, nil
	})
}

func (s *widgetService) ToggleProduct(ctx context.Context, sessionID, key string) (*view.Page, error) {
	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		if p, ok := findProduct(sess.Scope, key); ok {
			sess.Selection.Toggle(p)
		} else if !sess.Selection.Remove(key) {
			return nil, ErrUnknownProduct
		}
		s.persistSelection(ctx, sess)
		return events.SelectionChanged(sess.ID, sess.Selection.Keys(), s.opts.Now()), nil
	})
}

func (s *widgetService) RemoveSelection(ctx context.Context, sessionID, key string) (*view.Page, error) {
	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		if !sess.Selection.Remove(key) {
			return nil, ErrUnknownProduct
		}
		s.persistSelection(ctx, sess)
		return events.SelectionChanged(sess.ID, sess.Selection.Keys(), s.opts.Now()), nil
	})
}

func (s *widgetService) ClearSelections(ctx context.Context, sessionID string) (*view.Page, error) {
	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		sess.Selection.Clear()
		s.persistSelection(ctx, sess)
		return events.SelectionChanged(sess.ID, nil, s.opts.Now()), nil
	})
}

func (s *widgetService) GenerateRoutine(ctx context.Context, sessionID string) (*view.Page, error) {
	var (
		messages []llm.Message
		count    int
		skip     bool
	)
	pending, err := s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		if sess.InFlight {
			return nil, ErrRequestInFlight
		}
		if sess.Selection.Len() == 0 {
			sess.Notice = &entity.Notice{Kind: entity.NoticeInfo, Text: NoticeSelectFirst}
			skip = true
			return nil, nil
		}

		prompt, err := routinePrompt(sess.Selection.Snapshot())
		if err != nil {
			return nil, err
		}
		sess.Conversation.Append(entity.RoleUser, prompt, false)
		sess.Notice = &entity.Notice{Kind: entity.NoticePending, Text: NoticeGeneratingRoutine}
		sess.InFlight = true

		messages = sess.Conversation.Messages()
		count = sess.Selection.Len()
		return events.RoutineRequested(sess.ID, count, s.opts.Now()), nil
	})
	if err != nil || skip {
		return pending, err
	}

	s.logger.Info("WidgetService", "Requesting routine", map[string]interface{}{
		"session_id":    sessionID,
		"product_count": count,
		"turns":         len(messages),
	})
	return s.complete(ctx, sessionID, messages, s.opts.RoutineMaxTokens, NoticeNoRoutineReply)
}

func (s *widgetService) SendChat(ctx context.Context, sessionID, text string) (*view.Page, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Page(ctx, sessionID)
	}

	var (
		messages []llm.Message
		decision topic.Decision
	)
	pending, err := s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		if sess.InFlight {
			return nil, ErrRequestInFlight
		}

		decision = s.gate.Decide(text, sess.Conversation.HasRoutine(s.gate.RoutineThreshold()))
		switch decision {
		case topic.Guide:
			sess.Notice = &entity.Notice{Kind: entity.NoticeInfo, Text: topic.GuidanceMessage}
		case topic.Refuse:
			sess.Conversation.Append(entity.RoleAssistant, topic.RefusalMessage, true)
			sess.Notice = nil
		default:
			sess.Conversation.Append(entity.RoleUser, text, true)
			sess.Notice = &entity.Notice{Kind: entity.NoticePending, Text: NoticeThinking}
			sess.InFlight = true
			messages = sess.Conversation.Messages()
		}
		return events.ChatSent(sess.ID, decision.String(), s.opts.Now()), nil
	})
	if err != nil || decision != topic.Allow {
		return pending, err
	}

	return s.complete(ctx, sessionID, messages, s.opts.ChatMaxTokens, NoticeNoChatReply)
}

// complete calls the assistant without holding the session lock and records
// the outcome. Failures leave the conversation as it was before the call.
func (s *widgetService) complete(ctx context.Context, sessionID string, messages []llm.Message, maxTokens int, noReply string) (*view.Page, error) {
	reply, callErr := s.gateway.Complete(ctx, messages, llm.WithMaxTokens(maxTokens))

	return s.update(ctx, sessionID, func(sess *store.Session) (events.Event, error) {
		sess.InFlight = false
		if callErr != nil {
			sess.Notice = s.failureNotice(sessionID, callErr, noReply)
			return nil, nil
		}
		sess.Conversation.Append(entity.RoleAssistant, reply, true)
		sess.Notice = nil
		return nil, nil
	})
}

func (s *widgetService) failureNotice(sessionID string, err error, noReply string) *entity.Notice {
	details := map[string]interface{}{
		"session_id": sessionID,
		"error":      err.Error(),
	}

	var statusErr *llm.StatusError
	switch {
	case errors.As(err, &statusErr):
		s.logger.Warn("WidgetService", "Assistant returned an error status", details)
		return &entity.Notice{
			Kind:   entity.NoticeError,
			Text:   fmt.Sprintf("Error from assistant: %d %s", statusErr.StatusCode, statusErr.Status),
			Detail: statusErr.Body,
		}
	case errors.Is(err, llm.ErrNoReply):
		s.logger.Warn("WidgetService", "Assistant reply had no content", details)
		return &entity.Notice{Kind: entity.NoticeError, Text: noReply}
	default:
		s.logger.Error("WidgetService", "Assistant request failed", details)
		return &entity.Notice{Kind: entity.NoticeError, Text: "Request failed: " + err.Error()}
	}
}

// loadCatalog fetches the catalog. A failure yields an empty list.
func (s *widgetService) loadCatalog(ctx context.Context, sess *store.Session) []entity.Product {
	products, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("WidgetService", "Failed to load catalog", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return nil
	}
	if categories := catalog.Categories(products); len(categories) > 0 {
		sess.Categories = categories
	}
	return products
}

func (s *widgetService) persistSelection(ctx context.Context, sess *store.Session) {
	if err := s.snapshots.Save(ctx, sess.ID, sess.Selection.Snapshot()); err != nil {
		s.logger.Warn("WidgetService", "Failed to persist selection", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}
}

func (s *widgetService) buildPage(ctx context.Context, sess *store.Session) view.Page {
	if sess.Categories == nil {
		s.loadCatalog(ctx, sess)
	}

	page := view.Page{
		Categories: sess.Categories,
		Category:   sess.Category,
		Query:      sess.Query,
		Cards:      []view.CardView{},
		Selected:   view.RenderSelected(sess.Selection),
		Chat:       view.RenderChat(sess.Conversation),
		Busy:       sess.InFlight,
	}
	if page.Categories == nil {
		page.Categories = []string{}
	}
	if sess.ScopeLoaded {
		page.Cards = view.RenderCatalog(catalog.Search(sess.Scope, sess.Query), sess.Selection)
	} else {
		page.Placeholder = view.PlaceholderNoCategory
	}
	if sess.Notice != nil {
		notice := *sess.Notice
		page.Notice = &notice
	}
	return page
}

func (s *widgetService) publishPage(ctx context.Context, sessionID string, page view.Page) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.WidgetEvent{
		SessionID: sessionID,
		Type:      dto.WidgetEventUpdate,
		Page:      page,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn("WidgetService", "Failed to publish widget update", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *widgetService) publishActivity(ctx context.Context, event events.Event) {
	if s.activity == nil || event == nil {
		return
	}
	if err := s.activity.Publish(ctx, event); err != nil {
		s.logger.Warn("WidgetService", "Failed to publish activity event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func findProduct(products []entity.Product, key string) (entity.Product, bool) {
	for _, p := range products {
		p = p.WithKey()
		if p.Key == key {
			return p, true
		}
	}
	return entity.Product{}, false
}

type routineProduct struct {
	Name        string `json:"name,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// routinePrompt embeds the selection as 2-space indented JSON.
func routinePrompt(products []entity.Product) (string, error) {
	payload := make([]routineProduct, 0, len(products))
	for _, p := range products {
		payload = append(payload, routineProduct{
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    p.Category,
			Description: p.Description,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encode routine products: %w", err)
	}
	return routinePromptPrefix + strings.TrimRight(buf.String(), "\n"), nil
}
