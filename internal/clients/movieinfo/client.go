package movieinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/apierr"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/upstream"
)

// Client reads movie infos from the movie-info service.
type Client struct {
	up  *upstream.Client
	log *logger.Logger
}

func New(up *upstream.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{up: up, log: log.With("client", "MovieInfoClient")}
}

// Get fetches one movie info. Absence is an error here: a movie without its
// info cannot be aggregated.
func (c *Client) Get(ctx context.Context, movieID string) (*types.MovieInfo, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, apierr.BadRequest("invalid_movie_id", "movieId must not be null or empty")
	}

	var out types.MovieInfo
	if _, err := c.up.Call(ctx, upstream.Request{ID: movieID}, &out); err != nil {
		return nil, describe(err, movieID)
	}
	return &out, nil
}

// Stream relays the movie-info SSE feed, decoding each frame.
func (c *Client) Stream(ctx context.Context, onInfo func(*types.MovieInfo) error) error {
	return c.up.Stream(ctx, upstream.Request{ID: "stream"}, func(_ string, data string) error {
		var mi types.MovieInfo
		if err := json.Unmarshal([]byte(data), &mi); err != nil {
			c.log.Warn("skipping undecodable movie info frame", "error", err)
			return nil
		}
		return onInfo(&mi)
	})
}

func describe(err error, movieID string) error {
	ue, ok := upstream.AsError(err)
	if !ok {
		return err
	}
	switch ue.Kind {
	case upstream.KindNotFound:
		return ue.WithMessage(fmt.Sprintf("There is no MovieInfo available for the passed in Id : %s", movieID))
	case upstream.KindServer:
		return ue.WithMessage("Server Exception in MovieInfoService: " + ue.Message)
	default:
		return ue
	}
}
