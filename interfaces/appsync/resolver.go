package appsync

import (
	"context"
	"encoding/json"
	"fmt"

	"wikicollector-backend/application/commands"
	cmdbus "wikicollector-backend/application/commands/bus"
	"wikicollector-backend/application/queries"
	querybus "wikicollector-backend/application/queries/bus"
	"wikicollector-backend/application/services"
	appErrors "wikicollector-backend/pkg/errors"

	"go.uber.org/zap"
)

type fieldFunc func(ctx context.Context, userID string, args json.RawMessage) (interface{}, error)

// Resolver dispatches gateway events by field name
type Resolver struct {
	fields map[string]fieldFunc
	logger *zap.Logger
}

// NewResolver creates a resolver serving every known field
func NewResolver(
	commandBus *cmdbus.CommandBus,
	queryBus *querybus.QueryBus,
	uploads *services.UploadService,
	logger *zap.Logger,
) *Resolver {
	h := &fieldHandlers{commands: commandBus, queries: queryBus, uploads: uploads}
	return &Resolver{
		fields: map[string]fieldFunc{
			FieldGetArticle:        h.getArticle,
			FieldListArticles:      h.listArticles,
			FieldCreateArticle:     h.createArticle,
			FieldUpdateArticle:     h.updateArticle,
			FieldDeleteArticle:     h.deleteArticle,
			FieldSearch:            h.search,
			FieldSearchArticles:    h.search,
			FieldGetImageUploadURL: h.getImageUploadURL,
		},
		logger: logger,
	}
}

// Only returns a resolver restricted to names. Other fields are rejected as
// unknown.
func (r *Resolver) Only(names ...string) *Resolver {
	fields := make(map[string]fieldFunc, len(names))
	for _, name := range names {
		if fn, ok := r.fields[name]; ok {
			fields[name] = fn
		}
	}
	return &Resolver{fields: fields, logger: r.logger}
}

// Handle authorizes the caller, then runs the requested field. Identity is
// checked before the field name so anonymous calls never reach a store.
func (r *Resolver) Handle(ctx context.Context, event Event) (interface{}, error) {
	userID := event.UserID()
	if userID == "" {
		r.logger.Warn("Rejected call without identity", zap.String("operation", event.Info.FieldName))
		return nil, appErrors.NewUnauthorizedError("")
	}

	fn, ok := r.fields[event.Info.FieldName]
	if !ok {
		r.logger.Warn("Unknown field name",
			zap.String("operation", event.Info.FieldName),
			zap.String("userID", userID),
		)
		return nil, appErrors.NewValidationError(fmt.Sprintf("Unknown field name: %s", event.Info.FieldName))
	}

	result, err := fn(ctx, userID, event.Arguments)
	if err != nil {
		r.logger.Error("Operation failed",
			zap.String("operation", event.Info.FieldName),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, gatewayError(err)
	}
	return result, nil
}

// gatewayError strips bus wrapping so the caller sees the AppError message
func gatewayError(err error) error {
	if appErr := appErrors.GetAppError(err); appErr != nil {
		return appErr
	}
	return err
}

func decodeArgs(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return appErrors.NewValidationError("malformed arguments").WithCause(err)
	}
	return nil
}

type fieldHandlers struct {
	commands *cmdbus.CommandBus
	queries  *querybus.QueryBus
	uploads  *services.UploadService
}

func (h *fieldHandlers) getArticle(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args articleIDArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return h.queries.Ask(ctx, queries.GetArticleQuery{UserID: userID, ArticleID: args.ArticleID})
}

func (h *fieldHandlers) listArticles(ctx context.Context, userID string, _ json.RawMessage) (interface{}, error) {
	return h.queries.Ask(ctx, queries.ListArticlesQuery{UserID: userID})
}

func (h *fieldHandlers) createArticle(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args createArticleArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	cmd := commands.CreateArticleCommand{UserID: userID}
	if args.Input != nil {
		cmd.Title = args.Input.Title
		cmd.Content = args.Input.Content
	}
	return h.commands.Send(ctx, cmd)
}

func (h *fieldHandlers) updateArticle(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args updateArticleArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	cmd := commands.UpdateArticleCommand{UserID: userID, ArticleID: args.ArticleID}
	if args.Input != nil {
		cmd.Title = args.Input.Title
		cmd.Content = args.Input.Content
	}
	return h.commands.Send(ctx, cmd)
}

func (h *fieldHandlers) deleteArticle(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args articleIDArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return h.commands.Send(ctx, commands.DeleteArticleCommand{UserID: userID, ArticleID: args.ArticleID})
}

func (h *fieldHandlers) search(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args searchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	q := queries.SearchArticlesQuery{UserID: userID}
	if args.Query != nil {
		q.Query = *args.Query
	}
	return h.queries.Ask(ctx, q)
}

func (h *fieldHandlers) getImageUploadURL(ctx context.Context, userID string, raw json.RawMessage) (interface{}, error) {
	var args uploadArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return h.uploads.IssueUploadURL(ctx, services.UploadRequest{
		UserID:   userID,
		FileName: args.FileName,
		FileType: args.FileType,
	})
}
