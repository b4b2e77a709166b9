// Package social implements the social feed endpoints: posts, comments,
// likes, friend requests and stories. Everything is thin glue over the
// tabular store; there is no fan-out or feed ranking, the apps sort
// client-side.
package social

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the base path of the social endpoints.
const Path = handler.RootPath + "/social"

// Service is the social handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the social handler.
var Handler = Service{}

// Init initializes the social handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path+"/posts", s.ListPosts)
	app.Post(Path+"/posts", s.CreatePost)
	app.Delete(Path+"/posts/:id", s.DeletePost)

	app.Get(Path+"/comments", s.ListComments)
	app.Post(Path+"/comments", s.CreateComment)

	app.Get(Path+"/likes", s.ListLikes)
	app.Post(Path+"/likes", s.ToggleLike)

	app.Get(Path+"/friend-requests", s.ListFriendRequests)
	app.Post(Path+"/friend-requests", s.CreateFriendRequest)
	app.Post(Path+"/friend-requests/status", s.SetFriendRequestStatus)

	app.Get(Path+"/stories", s.ListStories)
	app.Post(Path+"/stories", s.CreateStory)

	return nil
}
