package reviews

import (
	"context"
	"net/url"
	"strings"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/apierr"
	"github.com/yungbote/movies-backend/internal/upstream"
)

// Client reads reviews from the review service.
type Client struct {
	up *upstream.Client
}

func New(up *upstream.Client) *Client {
	return &Client{up: up}
}

// ListByMovieID returns the reviews for one movie in upstream order. A 404 is
// returned as an upstream not_found error; callers decide whether absence matters.
func (c *Client) ListByMovieID(ctx context.Context, movieID string) ([]*types.Review, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, apierr.BadRequest("invalid_movie_id", "movieId must not be null or empty")
	}

	var out []*types.Review
	req := upstream.Request{Query: url.Values{"movieInfoId": {movieID}}}
	if _, err := c.up.Call(ctx, req, &out); err != nil {
		return nil, describe(err)
	}
	if out == nil {
		out = []*types.Review{}
	}
	return out, nil
}

func describe(err error) error {
	ue, ok := upstream.AsError(err)
	if !ok {
		return err
	}
	switch ue.Kind {
	case upstream.KindClient:
		return ue.WithMessage("Client error: " + ue.Message)
	case upstream.KindServer:
		return ue.WithMessage("Server error: " + ue.Message)
	default:
		return ue
	}
}
